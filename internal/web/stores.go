package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/katalog/internal/catalog"
	"github.com/erazemk/katalog/internal/model"
	"github.com/erazemk/katalog/internal/store"
)

const (
	msgStoreExists       = "Store already exist, please try another"
	msgSomethingWrong    = "Something went wrong"
	msgStoreRenamed      = "Storename updated successfully."
	msgStoreNotUpdated   = "There was an error. Could not update store"
	msgStoreDeleted      = "Store deleted successfully"
	msgStoreHasDependent = "Make sure you removed all products and categories"
)

// storePage loads the page data for a store the caller owns. Other stores
// redirect to the store picker.
func (s *Server) storePage(w http.ResponseWriter, r *http.Request, title string) (PageData, bool) {
	claims := GetWebClaims(r.Context())
	st, err := s.Service.GetStore(r.Context(), claims.UserID(), r.PathValue("storeId"))
	if err != nil {
		if catalog.KindOf(err) == catalog.Unexpected {
			slog.Error("loading store", "error", err)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return PageData{}, false
	}

	stores, err := s.Service.ListStores(r.Context(), claims.UserID())
	if err != nil {
		slog.Error("listing stores", "error", err)
	}

	return PageData{
		Title:  title,
		User:   claims,
		Store:  st,
		Stores: stores,
		Toast:  popFlash(w, r),
	}, true
}

type homePage struct {
	PageData
	ShowCreate bool
	Name       string
}

// Home handles GET /. Owners with stores go to their first store; owners
// without one get the create-store view.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	stores, err := s.Service.ListStores(r.Context(), claims.UserID())
	if err != nil {
		slog.Error("listing stores", "error", err)
	}
	if len(stores) > 0 {
		http.Redirect(w, r, "/stores/"+stores[0].ID, http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, "home.html", &homePage{
		PageData:   PageData{Title: "Create store", User: claims, Toast: popFlash(w, r)},
		ShowCreate: true,
	})
}

// StoreCreateSubmit handles POST /stores.
func (s *Server) StoreCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	name := r.FormValue("name")

	st, err := s.Service.CreateStore(r.Context(), claims.UserID(), model.StoreInput{Name: name})
	if err != nil {
		toast := &Toast{Error: true, Message: msgSomethingWrong}
		switch catalog.KindOf(err) {
		case catalog.Conflict:
			toast.Message = msgStoreExists
		case catalog.Unauthenticated:
			toast.Message = catalog.MsgUnauthenticated
		case catalog.Unexpected:
			slog.Error("creating store", "error", err)
		}

		stores, _ := s.Service.ListStores(r.Context(), claims.UserID())
		s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "home.html", &homePage{
			PageData:   PageData{Title: "Create store", User: claims, Stores: stores, Toast: toast},
			ShowCreate: true,
			Name:       name,
		})
		return
	}

	setFlash(w, Toast{Message: "Store created"})
	http.Redirect(w, r, "/stores/"+st.ID, http.StatusSeeOther)
}

type overviewPage struct {
	PageData
	Counts  *store.StoreCounts
	APIBase string
}

// OverviewPage handles GET /stores/{storeId}.
func (s *Server) OverviewPage(w http.ResponseWriter, r *http.Request) {
	pd, ok := s.storePage(w, r, "Overview")
	if !ok {
		return
	}

	counts, err := s.Service.Overview(r.Context(), pd.User.UserID(), pd.Store.ID)
	if err != nil {
		slog.Error("counting store rows", "store", pd.Store.ID, "error", err)
		counts = &store.StoreCounts{}
	}

	s.Templates.Render(w, "overview.html", &overviewPage{PageData: pd, Counts: counts, APIBase: s.APIBase})
}

type settingsPage struct {
	PageData
	Name    string
	Open    bool
	Confirm Confirm
}

func (s *Server) settings(pd PageData, name string) *settingsPage {
	base := "/stores/" + pd.Store.ID
	return &settingsPage{
		PageData: pd,
		Name:     name,
		Confirm:  Confirm{Action: base + "/delete", Cancel: base + "/settings"},
	}
}

// SettingsPage handles GET /stores/{storeId}/settings.
func (s *Server) SettingsPage(w http.ResponseWriter, r *http.Request) {
	pd, ok := s.storePage(w, r, "Settings")
	if !ok {
		return
	}
	s.Templates.Render(w, "settings.html", s.settings(pd, pd.Store.Name))
}

// SettingsSubmit handles POST /stores/{storeId}/settings.
func (s *Server) SettingsSubmit(w http.ResponseWriter, r *http.Request) {
	pd, ok := s.storePage(w, r, "Settings")
	if !ok {
		return
	}

	name := r.FormValue("name")
	if _, err := s.Service.UpdateStore(r.Context(), pd.User.UserID(), pd.Store.ID, model.StoreInput{Name: name}); err != nil {
		toast := &Toast{Error: true, Message: msgStoreNotUpdated}
		switch catalog.KindOf(err) {
		case catalog.Unauthenticated:
			toast.Message = catalog.MsgUnauthenticated
		case catalog.Unexpected:
			slog.Error("renaming store", "store", pd.Store.ID, "error", err)
		}
		page := s.settings(pd, name)
		page.Toast = toast
		s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "settings.html", page)
		return
	}

	setFlash(w, Toast{Message: msgStoreRenamed})
	http.Redirect(w, r, "/stores/"+pd.Store.ID+"/settings", http.StatusSeeOther)
}

// StoreDeletePage handles GET /stores/{storeId}/delete.
func (s *Server) StoreDeletePage(w http.ResponseWriter, r *http.Request) {
	pd, ok := s.storePage(w, r, "Settings")
	if !ok {
		return
	}
	page := s.settings(pd, pd.Store.Name)
	page.Open = true
	s.Templates.Render(w, "settings.html", page)
}

// StoreDeleteSubmit handles POST /stores/{storeId}/delete.
func (s *Server) StoreDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("storeId")
	if _, err := s.Service.DeleteStore(r.Context(), webUserID(r), storeID); err != nil {
		if catalog.KindOf(err) == catalog.Unexpected {
			slog.Error("deleting store", "store", storeID, "error", err)
		}
		setFlash(w, Toast{Error: true, Message: msgStoreHasDependent})
		http.Redirect(w, r, "/stores/"+storeID+"/settings", http.StatusSeeOther)
		return
	}

	setFlash(w, Toast{Message: msgStoreDeleted})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
