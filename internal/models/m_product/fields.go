package m_product

// Field name constants for the tbl_product table.
const (
	TableName = "tbl_product"

	ProdID     = "prod_id"
	ProdName   = "prod_name"
	Price      = "price"
	Category   = "category"
	CreateDate = "create_date"
	UpdateDate = "update_date"
)

// NameMaxLength is the length bound of prod_name, in characters.
const NameMaxLength = 30

// Columns returns every column of the table in declaration order.
func Columns() []string {
	return []string{ProdID, ProdName, Price, Category, CreateDate, UpdateDate}
}
