package handlers

import (
	"fmt"
	"net/http"

	"github.com/blogly/blogly/internal/models"
	"github.com/blogly/blogly/internal/store"
)

type UserHandler struct {
	Store *store.Store
	Views Renderer
	Err   *ErrorHandler
	Flash *Flash
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.Users.List(r.Context())
	if err != nil {
		h.Err.ServerError(w, r, err)
		return
	}
	render(w, r, h.Views, h.Err, http.StatusOK, "users", map[string]interface{}{
		"Users": users,
		"Flash": h.Flash.Get(w, r),
	})
}

func (h *UserHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.Views, h.Err, http.StatusOK, "user_new", map[string]interface{}{
		"Errors":     formErrors{},
		"FormValues": map[string]string{},
	})
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Err.BadRequest(w, r)
		return
	}

	firstName := field(r, "first_name")
	lastName := field(r, "last_name")
	imageURL := field(r, "image_url")

	errs := formErrors{}
	errs.required("FirstName", firstName, "First name is required")
	errs.required("LastName", lastName, "Last name is required")
	if len(errs) > 0 {
		render(w, r, h.Views, h.Err, http.StatusUnprocessableEntity, "user_new", map[string]interface{}{
			"Errors": errs,
			"FormValues": map[string]string{
				"FirstName": firstName,
				"LastName":  lastName,
				"ImageURL":  imageURL,
			},
		})
		return
	}

	user := &models.User{FirstName: firstName, LastName: lastName, ImageURL: imageURL}
	if err := h.Store.Users.Create(r.Context(), user); err != nil {
		h.Err.ServerError(w, r, err)
		return
	}

	h.Flash.Set(w, fmt.Sprintf("Added %s.", user.FullName()))
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	user, err := h.Store.Users.GetWithPosts(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	render(w, r, h.Views, h.Err, http.StatusOK, "user_detail", map[string]interface{}{
		"User":  user,
		"Flash": h.Flash.Get(w, r),
	})
}

func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	user, err := h.Store.Users.Get(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	render(w, r, h.Views, h.Err, http.StatusOK, "user_edit", map[string]interface{}{
		"User":   user,
		"Errors": formErrors{},
		"FormValues": map[string]string{
			"FirstName": user.FirstName,
			"LastName":  user.LastName,
		},
	})
}

// Update changes the user's name only; the picture chosen at creation stays.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	user, err := h.Store.Users.Get(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.Err.BadRequest(w, r)
		return
	}

	firstName := field(r, "first_name")
	lastName := field(r, "last_name")

	errs := formErrors{}
	errs.required("FirstName", firstName, "First name is required")
	errs.required("LastName", lastName, "Last name is required")
	if len(errs) > 0 {
		render(w, r, h.Views, h.Err, http.StatusUnprocessableEntity, "user_edit", map[string]interface{}{
			"User":   user,
			"Errors": errs,
			"FormValues": map[string]string{
				"FirstName": firstName,
				"LastName":  lastName,
			},
		})
		return
	}

	user, err = h.Store.Users.UpdateName(r.Context(), id, firstName, lastName)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}

	h.Flash.Set(w, fmt.Sprintf("Updated %s.", user.FullName()))
	http.Redirect(w, r, fmt.Sprintf("/users/%d", user.ID), http.StatusSeeOther)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	user, err := h.Store.Users.Get(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	if err := h.Store.Users.Delete(r.Context(), id); err != nil {
		h.Err.StoreError(w, r, err)
		return
	}

	h.Flash.Set(w, fmt.Sprintf("Deleted %s.", user.FullName()))
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
