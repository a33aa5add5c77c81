package handlers

import (
	"fmt"
	"net/http"

	"github.com/blogly/blogly/internal/models"
	"github.com/blogly/blogly/internal/store"
)

// recentPostsLimit is how many posts the homepage shows.
const recentPostsLimit = 3

type PostHandler struct {
	Store *store.Store
	Views Renderer
	Err   *ErrorHandler
	Flash *Flash
}

func (h *PostHandler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Store.Posts.Recent(r.Context(), recentPostsLimit)
	if err != nil {
		h.Err.ServerError(w, r, err)
		return
	}
	render(w, r, h.Views, h.Err, http.StatusOK, "home", map[string]interface{}{
		"Posts": posts,
		"Flash": h.Flash.Get(w, r),
	})
}

// New shows the form for a post owned by the user in the path.
func (h *PostHandler) New(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	user, err := h.Store.Users.Get(r.Context(), userID)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	h.renderForm(w, r, http.StatusOK, "post_new", map[string]interface{}{"User": user}, formErrors{}, map[string]string{}, nil)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	user, err := h.Store.Users.Get(r.Context(), userID)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.Err.BadRequest(w, r)
		return
	}

	title := field(r, "title")
	content := field(r, "content")
	tagIDs := formIDs(r.Form["tags"])

	errs := validatePost(title, content)
	if len(errs) > 0 {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "post_new", map[string]interface{}{"User": user},
			errs, map[string]string{"Title": title, "Content": content}, tagIDs)
		return
	}

	post, err := h.Store.Posts.Create(r.Context(), user.ID, title, content, tagIDs)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}

	h.Flash.Set(w, fmt.Sprintf("Post '%s' added.", post.Title))
	http.Redirect(w, r, fmt.Sprintf("/users/%d", user.ID), http.StatusSeeOther)
}

func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	post, err := h.Store.Posts.Get(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	render(w, r, h.Views, h.Err, http.StatusOK, "post_detail", map[string]interface{}{
		"Post":  post,
		"Flash": h.Flash.Get(w, r),
	})
}

func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	post, err := h.Store.Posts.Get(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	h.renderForm(w, r, http.StatusOK, "post_edit", map[string]interface{}{"Post": post},
		formErrors{}, map[string]string{"Title": post.Title, "Content": post.Content}, tagIDsOf(post.Tags))
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	post, err := h.Store.Posts.Get(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.Err.BadRequest(w, r)
		return
	}

	title := field(r, "title")
	content := field(r, "content")
	tagIDs := formIDs(r.Form["tags"])

	errs := validatePost(title, content)
	if len(errs) > 0 {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "post_edit", map[string]interface{}{"Post": post},
			errs, map[string]string{"Title": title, "Content": content}, tagIDs)
		return
	}

	updated, err := h.Store.Posts.Update(r.Context(), id, title, content, tagIDs)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}

	h.Flash.Set(w, fmt.Sprintf("Post '%s' edited.", updated.Title))
	http.Redirect(w, r, fmt.Sprintf("/users/%d", updated.UserID), http.StatusSeeOther)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Err.NotFound(w, r)
		return
	}
	post, err := h.Store.Posts.Delete(r.Context(), id)
	if err != nil {
		h.Err.StoreError(w, r, err)
		return
	}

	h.Flash.Set(w, fmt.Sprintf("Post '%s' deleted.", post.Title))
	http.Redirect(w, r, fmt.Sprintf("/users/%d", post.UserID), http.StatusSeeOther)
}

// renderForm adds the tag choices to data and renders a post form.
func (h *PostHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]interface{}, errs formErrors, values map[string]string, selected []int) {
	tags, err := h.Store.Tags.List(r.Context())
	if err != nil {
		h.Err.ServerError(w, r, err)
		return
	}
	data["Tags"] = tags
	data["Selected"] = selected
	data["Errors"] = errs
	data["FormValues"] = values
	render(w, r, h.Views, h.Err, status, page, data)
}

func validatePost(title, content string) formErrors {
	errs := formErrors{}
	errs.required("Title", title, "Title is required")
	errs.required("Content", content, "Content is required")
	return errs
}

func tagIDsOf(tags []models.Tag) []int {
	ids := make([]int, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}
