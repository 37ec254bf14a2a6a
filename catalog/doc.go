// Package catalog is the static registry of action kinds.
//
// Each kind has a human label, a description and the typed parameter fields
// the editor offers for it. The engine only needs the kind identifiers; the
// labels, placeholders and validation exist for the configuration commands.
//
// # Example
//
//	def, ok := catalog.Lookup(catalog.ShowText)
//	if ok {
//		fmt.Println(def.Label, def.Description)
//	}
//
//	if err := catalog.Validate("setLocalStorage", params); err != nil {
//		// errors.Is(err, catalog.ErrMissingParam)
//	}
package catalog
