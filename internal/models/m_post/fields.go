package m_post

// Field name constants for the tbl_post table.
const (
	TableName = "tbl_post"

	PostID     = "post_id"
	Title      = "title"
	Content    = "content"
	Writer     = "writer"
	CreateDate = "create_date"
	UpdateDate = "update_date"
)

// Columns returns every column of the table in declaration order.
func Columns() []string {
	return []string{PostID, Title, Content, Writer, CreateDate, UpdateDate}
}
