package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blogly/blogly/internal/models"
	"github.com/blogly/blogly/internal/store"
)

type TagHandler struct {
	Store *store.Store
	Views Renderer
	Err   *ErrorHandler
	Flash *Flash
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Store.Tags.List(r.Context())
	if err != nil {
		h.Err.ServerError(w, r, err)
		return
	}
	render(w, r, h.Views, h.Err, http.StatusOK, "tags", map[string]interface{}{
		"Tags":  tags,
		"Flash": h.Flash.Get(w, r),
	})
}

func (h *TagHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "tag_new", map[string]interface{}{}, formErrors{}, map[string]string{}, nil)
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Err.BadRequest(w, r)
		return
	}

	name := field(r, "name")
	postIDs := formIDs(r.Form["posts"])

	errs := formErrors{}
	errs.required("Name", name, "Name is required")
	if len(errs) == 0 {
		tag, err := h.Store.Tags.Create(r.Context(), name, postIDs)
		switch {
		case errors.Is(err, store.ErrDuplicateTagName):
			errs["Name"] = fmt.Sprintf("A tag named '%s' already exists", name)
		case err != nil:
			h.Err.ServerError(w, r, err)
			return
		default:
			h.Flash.Set(w, fmt.Sprintf("Tag '%s' added.", tag.Name))
			http.Redirect(w, r, "/tags", http.StatusSeeOther)
			return
		}
	}

	h.renderForm(w, r, http.StatusUnprocessableEntity, "tag_new", map[string]interface{}{},
		errs, map[string]string{"Name": name}, postIDs)
}

func (h *TagHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	tag, err := h.Store.Tags.Get(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	render(w, r, h.Views, h.Err, http.StatusOK, "tag_detail", map[string]interface{}{
		"Tag":   tag,
		"Flash": h.Flash.Get(w, r),
	})
}

func (h *TagHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	tag, err := h.Store.Tags.Get(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	h.renderForm(w, r, http.StatusOK, "tag_edit", map[string]interface{}{"Tag": tag},
		formErrors{}, map[string]string{"Name": tag.Name}, postIDsOf(tag.Posts))
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	tag, err := h.Store.Tags.Get(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.Err.BadRequest(w, r)
		return
	}

	name := field(r, "name")
	postIDs := formIDs(r.Form["posts"])

	errs := formErrors{}
	errs.required("Name", name, "Name is required")
	if len(errs) == 0 {
		updated, err := h.Store.Tags.Update(r.Context(), id, name, postIDs)
		switch {
		case errors.Is(err, store.ErrDuplicateTagName):
			errs["Name"] = fmt.Sprintf("A tag named '%s' already exists", name)
		case err != nil:
			h.Err.StoreError(w, r, err)
			return
		default:
			h.Flash.Set(w, fmt.Sprintf("Tag '%s' edited.", updated.Name))
			http.Redirect(w, r, fmt.Sprintf("/tags/%d", updated.ID), http.StatusSeeOther)
			return
		}
	}

	h.renderForm(w, r, http.StatusUnprocessableEntity, "tag_edit", map[string]interface{}{"Tag": tag},
		errs, map[string]string{"Name": name}, postIDs)
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	tag, err := h.Store.Tags.Get(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	if err := h.Store.Tags.Delete(r.Context(), id); err != nil {
		h.Err.StoreError(w, r, err)
		return
	}

	h.Flash.Set(w, fmt.Sprintf("Tag '%s' deleted.", tag.Name))
	http.Redirect(w, r, "/tags", http.StatusSeeOther)
}

// renderForm adds the post choices to data and renders a tag form.
func (h *TagHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]interface{}, errs formErrors, values map[string]string, selected []int) {
	posts, err := h.Store.Posts.List(r.Context())
	if err != nil {
		h.Err.ServerError(w, r, err)
		return
	}
	data["Posts"] = posts
	data["Selected"] = selected
	data["Errors"] = errs
	data["FormValues"] = values
	render(w, r, h.Views, h.Err, status, page, data)
}

func postIDsOf(posts []models.Post) []int {
	ids := make([]int, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}
