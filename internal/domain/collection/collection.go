// Package collection names the top-level document collections. The names double as
// table names, so only values listed here may ever be interpolated into SQL.
package collection

type Name string

const (
	Advice   Name = "consejos"
	Recipes  Name = "recetas"
	Daycares Name = "guarderias"
)

// SubComments is the sub-collection every document carries.
const SubComments = "comentarios"

var all = map[Name]bool{Advice: true, Recipes: true, Daycares: true}

func (n Name) Valid() bool {
	return all[n]
}

func (n Name) String() string {
	return string(n)
}
