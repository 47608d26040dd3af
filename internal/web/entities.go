package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/katalog/internal/model"
)

const dateFormat = "January 2, 2006"

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// checked reads a checkbox, which browsers submit as "on".
func checked(r *http.Request, name string) bool {
	v := r.FormValue(name)
	return v == "on" || model.IsTruthy(v)
}

func date(t time.Time) string {
	return t.Format(dateFormat)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// anyUser adapts a public list to the form's list signature.
func anyUser[T any](fn func(ctx context.Context, storeID string) ([]T, error)) func(context.Context, string, string) ([]T, error) {
	return func(ctx context.Context, _, storeID string) ([]T, error) {
		return fn(ctx, storeID)
	}
}

func billboardForm(s *Server) *form[model.Billboard, model.BillboardInput] {
	svc := s.Service
	return &form[model.Billboard, model.BillboardInput]{
		srv:      s,
		entity:   "Billboard",
		plural:   "Billboards",
		path:     "billboards",
		template: "billboard_form.html",
		hint:     "Make sure you removed all categories using this billboard",
		columns:  []string{"Label", "Date"},
		row: func(b model.Billboard) row {
			return row{ID: b.ID, Cells: []string{b.Label, date(b.CreatedAt)}}
		},
		blank: func() model.BillboardInput { return model.BillboardInput{} },
		initial: func(b *model.Billboard) model.BillboardInput {
			return model.BillboardInput{Label: b.Label, ImageURL: b.ImageURL}
		},
		parse: func(r *http.Request) model.BillboardInput {
			return model.BillboardInput{Label: field(r, "label"), ImageURL: field(r, "imageUrl")}
		},
		list:   anyUser(svc.ListBillboards),
		get:    svc.GetBillboard,
		create: svc.CreateBillboard,
		update: svc.UpdateBillboard,
		remove: svc.DeleteBillboard,
	}
}

func categoryForm(s *Server) *form[model.Category, model.CategoryInput] {
	svc := s.Service
	return &form[model.Category, model.CategoryInput]{
		srv:      s,
		entity:   "Category",
		plural:   "Categories",
		path:     "categories",
		template: "category_form.html",
		hint:     "Make sure you removed all products using this category first",
		columns:  []string{"Name", "Billboard", "Date"},
		row: func(c model.Category) row {
			label := ""
			if c.Billboard != nil {
				label = c.Billboard.Label
			}
			return row{ID: c.ID, Cells: []string{c.Name, label, date(c.CreatedAt)}}
		},
		blank: func() model.CategoryInput { return model.CategoryInput{} },
		initial: func(c *model.Category) model.CategoryInput {
			return model.CategoryInput{Name: c.Name, BillboardID: c.BillboardID}
		},
		parse: func(r *http.Request) model.CategoryInput {
			return model.CategoryInput{Name: field(r, "name"), BillboardID: field(r, "billboardId")}
		},
		options: func(ctx context.Context, storeID string) (*options, error) {
			billboards, err := svc.ListBillboards(ctx, storeID)
			if err != nil {
				return nil, err
			}
			return &options{Billboards: billboards}, nil
		},
		list:   anyUser(svc.ListCategories),
		get:    svc.GetCategory,
		create: svc.CreateCategory,
		update: svc.UpdateCategory,
		remove: svc.DeleteCategory,
	}
}

func sizeForm(s *Server) *form[model.Size, model.SizeInput] {
	svc := s.Service
	return &form[model.Size, model.SizeInput]{
		srv:      s,
		entity:   "Size",
		plural:   "Sizes",
		path:     "sizes",
		template: "size_form.html",
		hint:     "Make sure you removed all products using this size first",
		columns:  []string{"Name", "Value", "Date"},
		row: func(z model.Size) row {
			return row{ID: z.ID, Cells: []string{z.Name, z.Value, date(z.CreatedAt)}}
		},
		blank: func() model.SizeInput { return model.SizeInput{} },
		initial: func(z *model.Size) model.SizeInput {
			return model.SizeInput{Name: z.Name, Value: z.Value}
		},
		parse: func(r *http.Request) model.SizeInput {
			return model.SizeInput{Name: field(r, "name"), Value: field(r, "value")}
		},
		list:   anyUser(svc.ListSizes),
		get:    svc.GetSize,
		create: svc.CreateSize,
		update: svc.UpdateSize,
		remove: svc.DeleteSize,
	}
}

func colorForm(s *Server) *form[model.Color, model.ColorInput] {
	svc := s.Service
	return &form[model.Color, model.ColorInput]{
		srv:      s,
		entity:   "Color",
		plural:   "Colors",
		path:     "colors",
		template: "color_form.html",
		hint:     "Make sure you removed all products using this color first",
		columns:  []string{"Name", "Value", "Date"},
		row: func(c model.Color) row {
			return row{ID: c.ID, Cells: []string{c.Name, c.Value, date(c.CreatedAt)}}
		},
		blank: func() model.ColorInput { return model.ColorInput{} },
		initial: func(c *model.Color) model.ColorInput {
			return model.ColorInput{Name: c.Name, Value: c.Value}
		},
		parse: func(r *http.Request) model.ColorInput {
			return model.ColorInput{Name: field(r, "name"), Value: field(r, "value")}
		},
		list:   anyUser(svc.ListColors),
		get:    svc.GetColor,
		create: svc.CreateColor,
		update: svc.UpdateColor,
		remove: svc.DeleteColor,
	}
}

// parseImages reads one image URL per line.
func parseImages(raw string) []model.ImageInput {
	images := []model.ImageInput{}
	for _, line := range strings.Split(raw, "\n") {
		if url := strings.TrimSpace(line); url != "" {
			images = append(images, model.ImageInput{URL: url})
		}
	}
	return images
}

func productForm(s *Server) *form[model.Product, model.ProductInput] {
	svc := s.Service
	return &form[model.Product, model.ProductInput]{
		srv:      s,
		entity:   "Product",
		plural:   "Products",
		path:     "products",
		template: "product_form.html",
		hint:     "Something went wrong. Please check network connection and try again",
		columns:  []string{"Name", "Archived", "Featured", "Price", "Category", "Size", "Color", "Date"},
		row: func(p model.Product) row {
			var category, size, color string
			if p.Category != nil {
				category = p.Category.Name
			}
			if p.Size != nil {
				size = p.Size.Name
			}
			if p.Color != nil {
				color = p.Color.Value
			}
			return row{ID: p.ID, Cells: []string{
				p.Name, yesNo(p.IsArchived), yesNo(p.IsFeatured), "$" + formatPrice(p.Price),
				category, size, color, date(p.CreatedAt),
			}}
		},
		blank: func() model.ProductInput {
			return model.ProductInput{Images: []model.ImageInput{}}
		},
		initial: func(p *model.Product) model.ProductInput {
			images := make([]model.ImageInput, 0, len(p.Images))
			for _, img := range p.Images {
				images = append(images, model.ImageInput{URL: img.URL})
			}
			return model.ProductInput{
				Name:       p.Name,
				Images:     images,
				Price:      p.Price,
				CategoryID: p.CategoryID,
				ColorID:    p.ColorID,
				SizeID:     p.SizeID,
				IsFeatured: p.IsFeatured,
				IsArchived: p.IsArchived,
			}
		},
		parse: func(r *http.Request) model.ProductInput {
			price, _ := strconv.ParseFloat(field(r, "price"), 64)
			return model.ProductInput{
				Name:       field(r, "name"),
				Images:     parseImages(r.FormValue("images")),
				Price:      price,
				CategoryID: field(r, "categoryId"),
				ColorID:    field(r, "colorId"),
				SizeID:     field(r, "sizeId"),
				IsFeatured: checked(r, "isFeatured"),
				IsArchived: checked(r, "isArchived"),
			}
		},
		options: func(ctx context.Context, storeID string) (*options, error) {
			categories, err := svc.ListCategories(ctx, storeID)
			if err != nil {
				return nil, err
			}
			sizes, err := svc.ListSizes(ctx, storeID)
			if err != nil {
				return nil, err
			}
			colors, err := svc.ListColors(ctx, storeID)
			if err != nil {
				return nil, err
			}
			return &options{Categories: categories, Sizes: sizes, Colors: colors}, nil
		},
		list:   svc.ListAllProducts,
		get:    svc.GetProduct,
		create: svc.CreateProduct,
		update: svc.UpdateProduct,
		remove: svc.DeleteProduct,
	}
}
