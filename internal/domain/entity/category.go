package entity

// BlogCategory labels a blog post. Posts and categories are linked via a
// many-to-many join maintained by the external CMS; identity fields are
// immutable once created.
type BlogCategory struct {
	ID   int64
	Name string
	Slug string
}
