package generic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/inkwellcms/inkwell/internal/admin/forms"
	"github.com/inkwellcms/inkwell/internal/admin/hooks"
	"github.com/inkwellcms/inkwell/internal/admin/messages"
	"github.com/inkwellcms/inkwell/internal/admin/permission"
	"github.com/inkwellcms/inkwell/internal/admin/storage"
)

type note struct {
	ID   string
	Name string
}

// fakeNoteStore records mutations so tests can assert the store was or was
// not touched.
type fakeNoteStore struct {
	notes   map[string]note
	created []note
	updated []note
	deleted []string
	listErr error
}

func newFakeNoteStore(existing ...note) *fakeNoteStore {
	s := &fakeNoteStore{notes: make(map[string]note)}
	for _, n := range existing {
		s.notes[n.ID] = n
	}
	return s
}

func (s *fakeNoteStore) list(context.Context) ([]note, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	items := make([]note, 0, len(s.notes))
	for _, n := range s.notes {
		items = append(items, n)
	}
	return items, nil
}

func (s *fakeNoteStore) get(_ context.Context, id string) (note, error) {
	n, ok := s.notes[id]
	if !ok {
		return note{}, storage.ErrNotFound
	}
	return n, nil
}

func (s *fakeNoteStore) create(_ context.Context, n note) (note, error) {
	n.ID = "n-1"
	s.notes[n.ID] = n
	s.created = append(s.created, n)
	return n, nil
}

func (s *fakeNoteStore) update(_ context.Context, n note) (note, error) {
	s.notes[n.ID] = n
	s.updated = append(s.updated, n)
	return n, nil
}

func (s *fakeNoteStore) delete(_ context.Context, id string) error {
	delete(s.notes, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func decodeNote(r *http.Request) (note, forms.Errors) {
	errs := forms.Errors{}
	name := forms.Value(r, "name")
	if name == "" {
		errs.Add("name", "Name is required.")
	}
	return note{Name: name}, errs
}

func editorPolicy() permission.Policy {
	return permission.RolePolicy{Grants: map[string][]string{
		ActionAdd:    {"editor"},
		ActionChange: {"editor"},
		ActionDelete: {"admin"},
	}}
}

func noteConfig(policy permission.Policy, reg *hooks.Registry) Config {
	return Config{
		Resource:   "note",
		Policy:     policy,
		Hooks:      reg,
		IndexPath:  "/notes",
		CreatePath: "/notes/create",
		EditPath:   func(id string) string { return "/notes/" + id },
		DeletePath: func(id string) string { return "/notes/" + id + "/delete" },
	}
}

func asUser(r *http.Request, roles ...string) *http.Request {
	ctx := permission.WithUser(r.Context(), permission.User{ID: "u-1", Roles: roles})
	return r.WithContext(ctx)
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func flashMessages(t *testing.T, rec *httptest.ResponseRecorder) []messages.Message {
	t.Helper()
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == messages.CookieName {
			next.AddCookie(cookie)
		}
	}
	return messages.Pop(httptest.NewRecorder(), next)
}

func newCreateView(store *fakeNoteStore, policy permission.Policy, reg *hooks.Registry) *CreateView[note] {
	return &CreateView[note]{
		Config:        noteConfig(policy, reg),
		Decode:        decodeNote,
		Save:          store.create,
		ID:            func(n note) string { return n.ID },
		Display:       func(n note) string { return n.Name },
		SuccessFormat: "Note %q created.",
		ErrorMessage:  "The note could not be created due to errors.",
		Render: func(w http.ResponseWriter, _ *http.Request, page FormPage[note]) {
			if page.Errors.HasErrors() {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("form with errors"))
				return
			}
			_, _ = w.Write([]byte("form"))
		},
	}
}

func TestIndexViewPermissions(t *testing.T) {
	store := newFakeNoteStore(note{ID: "n-1", Name: "First"})
	view := &IndexView[note]{
		Config: noteConfig(editorPolicy(), nil),
		List:   store.list,
		Render: func(w http.ResponseWriter, _ *http.Request, page IndexPage[note]) {
			if page.CanAdd {
				_, _ = w.Write([]byte("can-add"))
			}
			_, _ = w.Write([]byte("index"))
		},
	}

	// No matching role: forbidden before any listing happens.
	rec := httptest.NewRecorder()
	view.Handle(rec, asUser(httptest.NewRequest(http.MethodGet, "/notes", nil), "viewer"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	// Editor passes the any-permission gate and can add.
	rec = httptest.NewRecorder()
	view.Handle(rec, asUser(httptest.NewRequest(http.MethodGet, "/notes", nil), "editor"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "can-add") {
		t.Fatal("expected editor to see the add affordance")
	}

	// Admin only holds delete, which still passes the any-permission gate,
	// but cannot add.
	rec = httptest.NewRecorder()
	view.Handle(rec, asUser(httptest.NewRequest(http.MethodGet, "/notes", nil), "admin"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if strings.Contains(rec.Body.String(), "can-add") {
		t.Fatal("expected admin without add grant to lack the add affordance")
	}
}

func TestIndexViewListError(t *testing.T) {
	store := newFakeNoteStore()
	store.listErr = errors.New("boom")
	view := &IndexView[note]{
		Config: noteConfig(nil, nil),
		List:   store.list,
		Render: func(http.ResponseWriter, *http.Request, IndexPage[note]) {},
	}

	rec := httptest.NewRecorder()
	view.Handle(rec, httptest.NewRequest(http.MethodGet, "/notes", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestIndexViewMethodNotAllowed(t *testing.T) {
	store := newFakeNoteStore()
	view := &IndexView[note]{
		Config: noteConfig(nil, nil),
		List:   store.list,
		Render: func(http.ResponseWriter, *http.Request, IndexPage[note]) {},
	}

	rec := httptest.NewRecorder()
	view.Handle(rec, httptest.NewRequest(http.MethodPost, "/notes", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestCreateViewSuccessFlow(t *testing.T) {
	store := newFakeNoteStore()
	view := newCreateView(store, editorPolicy(), nil)

	rec := httptest.NewRecorder()
	req := asUser(postForm("/notes/create", url.Values{"name": {"Hello"}}), "editor")
	view.Handle(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/notes" {
		t.Fatalf("redirect = %q, want %q", got, "/notes")
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 created note, got %d", len(store.created))
	}

	flashes := flashMessages(t, rec)
	if len(flashes) != 1 {
		t.Fatalf("expected exactly 1 flash, got %d", len(flashes))
	}
	if flashes[0].Level != messages.LevelSuccess {
		t.Fatalf("level = %q, want success", flashes[0].Level)
	}
	if flashes[0].Text != "Note \"Hello\" created." {
		t.Fatalf("text = %q", flashes[0].Text)
	}
	if len(flashes[0].Buttons) != 1 || flashes[0].Buttons[0].URL != "/notes/n-1" {
		t.Fatalf("buttons = %+v", flashes[0].Buttons)
	}
}

func TestCreateViewPermissionBeforeMutation(t *testing.T) {
	store := newFakeNoteStore()
	view := newCreateView(store, editorPolicy(), nil)

	rec := httptest.NewRecorder()
	req := asUser(postForm("/notes/create", url.Values{"name": {"Hello"}}), "viewer")
	view.Handle(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if len(store.created) != 0 {
		t.Fatal("expected denied request to never reach the store")
	}
	if flashes := flashMessages(t, rec); len(flashes) != 0 {
		t.Fatalf("expected no flash on forbidden, got %d", len(flashes))
	}
}

func TestCreateViewInvalidForm(t *testing.T) {
	store := newFakeNoteStore()
	view := newCreateView(store, nil, nil)

	rec := httptest.NewRecorder()
	view.Handle(rec, postForm("/notes/create", url.Values{"name": {""}}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "form with errors") {
		t.Fatal("expected re-rendered form")
	}
	if len(store.created) != 0 {
		t.Fatal("expected invalid form to skip the store")
	}

	flashes := flashMessages(t, rec)
	if len(flashes) != 1 {
		t.Fatalf("expected exactly 1 error flash, got %d", len(flashes))
	}
	if flashes[0].Level != messages.LevelError {
		t.Fatalf("level = %q, want error", flashes[0].Level)
	}
}

func TestCreateViewBeforeHookShortCircuits(t *testing.T) {
	store := newFakeNoteStore()
	reg := hooks.NewRegistry()
	reg.Register("before_create_note", func(*http.Request, any) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte("blocked by hook"))
		})
	})
	view := newCreateView(store, nil, reg)

	rec := httptest.NewRecorder()
	view.Handle(rec, postForm("/notes/create", url.Values{"name": {"Hello"}}))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if len(store.created) != 0 {
		t.Fatal("expected hook response to halt persistence")
	}
}

func TestCreateViewAfterHookSeesSavedObject(t *testing.T) {
	store := newFakeNoteStore()
	reg := hooks.NewRegistry()
	var gotObj any
	reg.Register("after_create_note", func(_ *http.Request, obj any) http.Handler {
		gotObj = obj
		return nil
	})
	view := newCreateView(store, nil, reg)

	rec := httptest.NewRecorder()
	view.Handle(rec, postForm("/notes/create", url.Values{"name": {"Hello"}}))

	saved, ok := gotObj.(note)
	if !ok {
		t.Fatalf("after hook obj = %T, want note", gotObj)
	}
	if saved.ID != "n-1" {
		t.Fatalf("after hook saw %+v, want saved note", saved)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect after non-response hook", rec.Code)
	}
}

func TestCreateViewGetRendersEmptyForm(t *testing.T) {
	view := newCreateView(newFakeNoteStore(), nil, nil)

	rec := httptest.NewRecorder()
	view.Handle(rec, httptest.NewRequest(http.MethodGet, "/notes/create", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "form" {
		t.Fatalf("body = %q, want empty form", rec.Body.String())
	}
}

func newEditView(store *fakeNoteStore, policy permission.Policy, reg *hooks.Registry) *EditView[note] {
	return &EditView[note]{
		Config: noteConfig(policy, reg),
		Get:    store.get,
		Decode: func(r *http.Request, current note) (note, forms.Errors) {
			item, errs := decodeNote(r)
			item.ID = current.ID
			return item, errs
		},
		Save:          store.update,
		ID:            func(n note) string { return n.ID },
		Display:       func(n note) string { return n.Name },
		SuccessFormat: "Note %q updated.",
		ErrorMessage:  "The note could not be saved due to errors.",
		Render: func(w http.ResponseWriter, _ *http.Request, page FormPage[note]) {
			if page.CanDelete {
				_, _ = w.Write([]byte("can-delete:" + page.DeletePath + ";"))
			}
			_, _ = w.Write([]byte("edit form"))
		},
	}
}

func TestEditViewSuccessFlow(t *testing.T) {
	store := newFakeNoteStore(note{ID: "n-7", Name: "Old"})
	view := newEditView(store, nil, nil)

	rec := httptest.NewRecorder()
	view.Handle(rec, postForm("/notes/n-7", url.Values{"name": {"New"}}), "n-7")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/notes" {
		t.Fatalf("redirect = %q, want /notes", got)
	}
	if len(store.updated) != 1 || store.updated[0].Name != "New" {
		t.Fatalf("updated = %+v", store.updated)
	}

	flashes := flashMessages(t, rec)
	if len(flashes) != 1 || flashes[0].Text != "Note \"New\" updated." {
		t.Fatalf("flashes = %+v", flashes)
	}
}

func TestEditViewNotFound(t *testing.T) {
	view := newEditView(newFakeNoteStore(), nil, nil)

	rec := httptest.NewRecorder()
	view.Handle(rec, httptest.NewRequest(http.MethodGet, "/notes/missing", nil), "missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestEditViewPermissionBeforeMutation(t *testing.T) {
	store := newFakeNoteStore(note{ID: "n-7", Name: "Old"})
	view := newEditView(store, editorPolicy(), nil)

	rec := httptest.NewRecorder()
	view.Handle(rec, asUser(postForm("/notes/n-7", url.Values{"name": {"New"}}), "viewer"), "n-7")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if len(store.updated) != 0 {
		t.Fatal("expected denied edit to never reach the store")
	}
}

func TestEditViewExposesDeleteWhenGranted(t *testing.T) {
	store := newFakeNoteStore(note{ID: "n-7", Name: "Old"})
	view := newEditView(store, permission.RolePolicy{Grants: map[string][]string{
		ActionChange: {"admin"},
		ActionDelete: {"admin"},
	}}, nil)

	rec := httptest.NewRecorder()
	view.Handle(rec, asUser(httptest.NewRequest(http.MethodGet, "/notes/n-7", nil), "admin"), "n-7")
	if !strings.Contains(rec.Body.String(), "can-delete:/notes/n-7/delete;") {
		t.Fatalf("expected delete affordance, got %q", rec.Body.String())
	}

	// change-only users edit without the delete affordance
	view.Config.Policy = permission.RolePolicy{Grants: map[string][]string{
		ActionChange: {"editor"},
	}}
	rec = httptest.NewRecorder()
	view.Handle(rec, asUser(httptest.NewRequest(http.MethodGet, "/notes/n-7", nil), "editor"), "n-7")
	if strings.Contains(rec.Body.String(), "can-delete") {
		t.Fatalf("expected no delete affordance, got %q", rec.Body.String())
	}
}

func TestEditViewInvalidFormKeepsSubmission(t *testing.T) {
	store := newFakeNoteStore(note{ID: "n-7", Name: "Old"})
	view := newEditView(store, nil, nil)

	rec := httptest.NewRecorder()
	view.Handle(rec, postForm("/notes/n-7", url.Values{"name": {""}}), "n-7")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(store.updated) != 0 {
		t.Fatal("expected invalid form to skip the store")
	}
	flashes := flashMessages(t, rec)
	if len(flashes) != 1 || flashes[0].Level != messages.LevelError {
		t.Fatalf("flashes = %+v, want single error", flashes)
	}
}

func TestEditViewBeforeHookReceivesCurrent(t *testing.T) {
	store := newFakeNoteStore(note{ID: "n-7", Name: "Old"})
	reg := hooks.NewRegistry()
	var gotObj any
	reg.Register("before_edit_note", func(_ *http.Request, obj any) http.Handler {
		gotObj = obj
		return nil
	})
	view := newEditView(store, nil, reg)

	rec := httptest.NewRecorder()
	view.Handle(rec, postForm("/notes/n-7", url.Values{"name": {"New"}}), "n-7")

	current, ok := gotObj.(note)
	if !ok || current.Name != "Old" {
		t.Fatalf("before hook obj = %#v, want current note", gotObj)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
}

func newDeleteView(store *fakeNoteStore, policy permission.Policy, reg *hooks.Registry) *DeleteView[note] {
	return &DeleteView[note]{
		Config:        noteConfig(policy, reg),
		Get:           store.get,
		Delete:        store.delete,
		ID:            func(n note) string { return n.ID },
		Display:       func(n note) string { return n.Name },
		SuccessFormat: "Note %q deleted.",
		Render: func(w http.ResponseWriter, _ *http.Request, page DeletePage[note]) {
			_, _ = w.Write([]byte("confirm delete " + page.Item.Name))
		},
	}
}

func TestDeleteViewConfirmThenDelete(t *testing.T) {
	store := newFakeNoteStore(note{ID: "n-3", Name: "Doomed"})
	view := newDeleteView(store, nil, nil)

	// GET renders the confirmation page without touching the store.
	rec := httptest.NewRecorder()
	view.Handle(rec, httptest.NewRequest(http.MethodGet, "/notes/n-3/delete", nil), "n-3")
	if !strings.Contains(rec.Body.String(), "confirm delete Doomed") {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if len(store.deleted) != 0 {
		t.Fatal("expected GET to leave the store untouched")
	}

	// POST deletes, flashes once, and redirects to the index.
	rec = httptest.NewRecorder()
	view.Handle(rec, postForm("/notes/n-3/delete", nil), "n-3")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/notes" {
		t.Fatalf("redirect = %q, want /notes", got)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "n-3" {
		t.Fatalf("deleted = %v", store.deleted)
	}
	flashes := flashMessages(t, rec)
	if len(flashes) != 1 || flashes[0].Text != "Note \"Doomed\" deleted." {
		t.Fatalf("flashes = %+v", flashes)
	}
}

func TestDeleteViewPermissionBeforeMutation(t *testing.T) {
	store := newFakeNoteStore(note{ID: "n-3", Name: "Doomed"})
	view := newDeleteView(store, editorPolicy(), nil)

	rec := httptest.NewRecorder()
	view.Handle(rec, asUser(postForm("/notes/n-3/delete", nil), "editor"), "n-3")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if len(store.deleted) != 0 {
		t.Fatal("expected denied delete to never reach the store")
	}
}

func TestDeleteViewBeforeHookShortCircuits(t *testing.T) {
	store := newFakeNoteStore(note{ID: "n-3", Name: "Doomed"})
	reg := hooks.NewRegistry()
	reg.Register("before_delete_note", func(*http.Request, any) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "protected", http.StatusUnprocessableEntity)
		})
	})
	view := newDeleteView(store, nil, reg)

	rec := httptest.NewRecorder()
	view.Handle(rec, postForm("/notes/n-3/delete", nil), "n-3")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if len(store.deleted) != 0 {
		t.Fatal("expected hook response to halt deletion")
	}
}

func TestDeleteViewNotFound(t *testing.T) {
	view := newDeleteView(newFakeNoteStore(), nil, nil)

	rec := httptest.NewRecorder()
	view.Handle(rec, httptest.NewRequest(http.MethodGet, "/notes/missing/delete", nil), "missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestNilPolicyGrantsEverything(t *testing.T) {
	store := newFakeNoteStore()
	view := newCreateView(store, nil, nil)

	rec := httptest.NewRecorder()
	view.Handle(rec, postForm("/notes/create", url.Values{"name": {"Open"}}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect with nil policy", rec.Code)
	}
	if len(store.created) != 1 {
		t.Fatal("expected creation with nil policy")
	}
}

func TestEmptySuccessFormatSuppressesFlash(t *testing.T) {
	store := newFakeNoteStore()
	view := newCreateView(store, nil, nil)
	view.SuccessFormat = ""

	rec := httptest.NewRecorder()
	view.Handle(rec, postForm("/notes/create", url.Values{"name": {"Quiet"}}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	if flashes := flashMessages(t, rec); len(flashes) != 0 {
		t.Fatalf("expected no flash, got %+v", flashes)
	}
}
