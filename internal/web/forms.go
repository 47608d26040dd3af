package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/katalog/internal/catalog"
	"github.com/erazemk/katalog/internal/model"
)

// newID is the {id} segment that opens a form in create mode.
const newID = "new"

type row struct {
	ID    string
	Cells []string
}

// options feeds the select inputs of forms that reference other rows.
type options struct {
	Billboards []model.Billboard
	Categories []model.Category
	Sizes      []model.Size
	Colors     []model.Color
}

// form is the list and edit flow of one store-scoped entity: a list page,
// a form page in create or edit mode, and a delete confirmation.
type form[T, In any] struct {
	srv *Server

	entity   string // "Billboard"
	plural   string // "Billboards"
	path     string // "billboards"
	template string
	// hint is shown when a delete fails.
	hint    string
	columns []string
	row     func(T) row
	blank   func() In
	initial func(*T) In
	parse   func(*http.Request) In
	options func(ctx context.Context, storeID string) (*options, error)

	list   func(ctx context.Context, userID, storeID string) ([]T, error)
	get    func(ctx context.Context, storeID, id string) (*T, error)
	create func(ctx context.Context, userID, storeID string, in In) (*T, error)
	update func(ctx context.Context, userID, storeID, id string, in In) (*T, error)
	remove func(ctx context.Context, userID, storeID, id string) (*T, error)
}

type listPage struct {
	PageData
	Plural  string
	Path    string
	Columns []string
	Rows    []row
}

type formPage struct {
	PageData
	Path        string
	ID          string
	Description string
	Action      string
	Editing     bool
	Open        bool
	Loading     bool
	Input       any
	Options     *options
	Confirm     Confirm
}

func (f *form[T, In]) base(storeID string) string {
	return "/stores/" + storeID + "/" + f.path
}

func (f *form[T, In]) noun() string {
	return strings.ToLower(f.entity)
}

// List handles GET /stores/{storeId}/{path}.
func (f *form[T, In]) List(w http.ResponseWriter, r *http.Request) {
	pd, ok := f.srv.storePage(w, r, f.plural)
	if !ok {
		return
	}

	items, err := f.list(r.Context(), pd.User.UserID(), pd.Store.ID)
	if err != nil {
		slog.Error("listing "+f.path, "store", pd.Store.ID, "error", err)
	}

	rows := make([]row, 0, len(items))
	for _, item := range items {
		rows = append(rows, f.row(item))
	}

	f.srv.Templates.Render(w, "list.html", &listPage{
		PageData: pd,
		Plural:   f.plural,
		Path:     f.path,
		Columns:  f.columns,
		Rows:     rows,
	})
}

// view builds the form page for the given input.
func (f *form[T, In]) view(ctx context.Context, pd PageData, id string, editing bool, in In) *formPage {
	p := &formPage{
		PageData: pd,
		Path:     f.path,
		ID:       id,
		Editing:  editing,
		Input:    in,
		Options:  &options{},
		Confirm: Confirm{
			Action: f.base(pd.Store.ID) + "/" + id + "/delete",
			Cancel: f.base(pd.Store.ID) + "/" + id,
		},
	}
	if editing {
		p.Title = "Edit " + f.noun()
		p.Description = "Edit a " + f.noun()
		p.Action = "Save changes"
	} else {
		p.Title = "Create " + f.noun()
		p.Description = "Add a new " + f.noun()
		p.Action = "Create"
	}

	if f.options != nil {
		opts, err := f.options(ctx, pd.Store.ID)
		if err != nil {
			slog.Error("loading form options", "form", f.path, "error", err)
		} else {
			p.Options = opts
		}
	}
	return p
}

// load returns the form page for {id}: create mode for "new", otherwise
// edit mode populated from the stored row.
func (f *form[T, In]) load(w http.ResponseWriter, r *http.Request) (*formPage, bool) {
	pd, ok := f.srv.storePage(w, r, "")
	if !ok {
		return nil, false
	}

	id := r.PathValue("id")
	if id == newID {
		return f.view(r.Context(), pd, id, false, f.blank()), true
	}

	item, err := f.get(r.Context(), pd.Store.ID, id)
	if err != nil {
		if catalog.KindOf(err) == catalog.NotFound {
			http.NotFound(w, r)
		} else {
			slog.Error("loading "+f.noun(), "id", id, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return nil, false
	}
	return f.view(r.Context(), pd, id, true, f.initial(item)), true
}

// Form handles GET /stores/{storeId}/{path}/{id}.
func (f *form[T, In]) Form(w http.ResponseWriter, r *http.Request) {
	page, ok := f.load(w, r)
	if !ok {
		return
	}
	f.srv.Templates.Render(w, f.template, page)
}

// Submit handles POST /stores/{storeId}/{path}/{id}: update when editing,
// create for "new".
func (f *form[T, In]) Submit(w http.ResponseWriter, r *http.Request) {
	pd, ok := f.srv.storePage(w, r, "")
	if !ok {
		return
	}

	id := r.PathValue("id")
	editing := id != newID
	in := f.parse(r)
	userID := pd.User.UserID()

	var err error
	if editing {
		_, err = f.update(r.Context(), userID, pd.Store.ID, id, in)
	} else {
		_, err = f.create(r.Context(), userID, pd.Store.ID, in)
	}
	if err != nil {
		toast := &Toast{Error: true, Message: "There was an error. Could not update " + f.noun()}
		switch catalog.KindOf(err) {
		case catalog.Unauthenticated:
			toast.Message = catalog.MsgUnauthenticated
		case catalog.Unexpected:
			slog.Error("saving "+f.noun(), "store", pd.Store.ID, "error", err)
		}

		page := f.view(r.Context(), pd, id, editing, in)
		page.Toast = toast
		f.srv.Templates.RenderStatus(w, http.StatusUnprocessableEntity, f.template, page)
		return
	}

	msg := f.entity + " created"
	if editing {
		msg = f.entity + " updated"
	}
	setFlash(w, Toast{Message: msg})
	http.Redirect(w, r, f.base(pd.Store.ID), http.StatusSeeOther)
}

// ConfirmDelete handles GET /stores/{storeId}/{path}/{id}/delete.
func (f *form[T, In]) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	page, ok := f.load(w, r)
	if !ok {
		return
	}
	page.Open = true
	f.srv.Templates.Render(w, f.template, page)
}

// Delete handles POST /stores/{storeId}/{path}/{id}/delete. Either outcome
// redirects, which closes the confirmation.
func (f *form[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	storeID, id := r.PathValue("storeId"), r.PathValue("id")

	if _, err := f.remove(r.Context(), webUserID(r), storeID, id); err != nil {
		msg := f.hint
		switch catalog.KindOf(err) {
		case catalog.Unauthenticated:
			msg = catalog.MsgUnauthenticated
		case catalog.Unexpected:
			slog.Error("deleting "+f.noun(), "store", storeID, "id", id, "error", err)
		}
		setFlash(w, Toast{Error: true, Message: msg})
		http.Redirect(w, r, f.base(storeID)+"/"+id, http.StatusSeeOther)
		return
	}

	setFlash(w, Toast{Message: f.entity + " deleted successfully"})
	http.Redirect(w, r, f.base(storeID), http.StatusSeeOther)
}

func (f *form[T, In]) register(mux *http.ServeMux, authMW func(http.Handler) http.Handler) {
	base := "/stores/{storeId}/" + f.path
	mux.Handle("GET "+base, authMW(http.HandlerFunc(f.List)))
	mux.Handle("GET "+base+"/{id}", authMW(http.HandlerFunc(f.Form)))
	mux.Handle("POST "+base+"/{id}", authMW(http.HandlerFunc(f.Submit)))
	mux.Handle("GET "+base+"/{id}/delete", authMW(http.HandlerFunc(f.ConfirmDelete)))
	mux.Handle("POST "+base+"/{id}/delete", authMW(http.HandlerFunc(f.Delete)))
}
