// Package schema defines the typed preference schema consumed across the
// module: a closed union of text entries and checkbox groups, plus the Form
// wrapper carrying the dialog title and the brand key submissions nest under.
package schema
