package main

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	postdomain "github.com/light-bringer/procat-orm/internal/app/post/domain"
	"github.com/light-bringer/procat-orm/internal/app/product/domain"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderProducts(w io.Writer, products []*domain.Product) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Price", "Category", "Created", "Updated"})
	for _, p := range products {
		t.AppendRow(table.Row{
			p.ID(), p.Name(), p.Price(), p.Category(),
			formatTime(p.CreateDate()), formatTime(p.UpdateDate()),
		})
	}
	t.AppendFooter(table.Row{"", "Total", len(products)})
	t.Render()
}

func renderPosts(w io.Writer, posts []*postdomain.Post) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Title", "Content", "Writer", "Created", "Updated"})
	for _, p := range posts {
		t.AppendRow(table.Row{
			p.ID(), p.Title(), p.Content(), p.Writer(),
			formatTime(p.CreateDate()), formatTime(p.UpdateDate()),
		})
	}
	t.AppendFooter(table.Row{"", "Total", len(posts)})
	t.Render()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateTime)
}
