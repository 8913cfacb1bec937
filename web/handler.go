package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/jimiolaniyan/feed"
)

type handler struct {
	store  *feed.Store
	view   *ViewState
	logger *zap.SugaredLogger
}

type postResponse struct {
	ID        feed.PostID       `json:"id"`
	Content   string            `json:"content"`
	HTML      string            `json:"html"`
	Likes     int               `json:"likes"`
	Liked     bool              `json:"liked"`
	Timestamp time.Time         `json:"timestamp"`
	Comments  []commentResponse `json:"comments"`
}

type commentResponse struct {
	ID       feed.CommentID `json:"id"`
	Username string         `json:"username"`
	Content  string         `json:"content"`
	HTML     string         `json:"html"`
}

// NewHandler wires the feed page and its per-post controls to store.
func NewHandler(store *feed.Store, logger *zap.SugaredLogger) http.Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	h := &handler{store: store, view: NewViewState(), logger: logger}

	router := httprouter.New()
	router.GET("/", h.index)
	router.POST("/posts", h.createPost)
	router.GET("/posts/:id/edit", h.startEdit)
	router.POST("/posts/:id/edit", h.commitEdit)
	router.GET("/posts/:id/delete", h.confirmDelete)
	router.POST("/posts/:id/delete", h.deletePost)
	router.POST("/posts/:id/like", h.toggleLike)
	router.POST("/posts/:id/comments", h.addComment)
	router.POST("/posts/:id/comments/toggle", h.toggleComments)
	router.GET("/v1/posts", h.listPosts)
	return router
}

func (h *handler) index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page := newFeedPage(h.store.Username(), h.store.Posts(), h.view)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderFeed(w, page); err != nil {
		h.logger.Errorw("error rendering feed", "error", err)
	}
}

func (h *handler) createPost(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	p, err := h.store.CreatePost(r.PostFormValue("content"))
	if err != nil {
		h.logger.Debugw("post rejected", "error", err)
	} else {
		h.logger.Infow("post created", "id", p.ID)
	}
	redirectHome(w, r)
}

func (h *handler) startEdit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := h.postID(w, ps)
	if !ok {
		return
	}
	if _, err := h.store.Post(id); err != nil {
		encodeError(err, w)
		return
	}
	h.view.SetEditing(id, true)
	redirectHome(w, r)
}

// commitEdit is the blur of the edit box: a valid, changed value is saved and
// the post goes back to viewing either way.
func (h *handler) commitEdit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := h.postID(w, ps)
	if !ok {
		return
	}
	h.view.SetEditing(id, false)
	if _, err := h.store.EditPost(id, r.PostFormValue("content")); err != nil {
		if errors.Is(err, feed.ErrPostNotFound) {
			encodeError(err, w)
			return
		}
		h.logger.Debugw("edit ignored", "id", id, "error", err)
	}
	redirectHome(w, r)
}

func (h *handler) confirmDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := h.postID(w, ps)
	if !ok {
		return
	}
	p, err := h.store.Post(id)
	if err != nil {
		encodeError(err, w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderConfirm(w, confirmPage{Prompt: feed.DeletePrompt, Post: p}); err != nil {
		h.logger.Errorw("error rendering confirmation", "error", err)
	}
}

func (h *handler) deletePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := h.postID(w, ps)
	if !ok {
		return
	}
	confirmed := r.PostFormValue("confirm") == "yes"
	deleted, err := h.store.DeletePost(id, feed.ConfirmFunc(func(string) bool { return confirmed }))
	if err != nil {
		encodeError(err, w)
		return
	}
	if deleted {
		h.view.Forget(id)
		h.logger.Infow("post deleted", "id", id)
	}
	redirectHome(w, r)
}

func (h *handler) toggleLike(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := h.postID(w, ps)
	if !ok {
		return
	}
	if _, err := h.store.ToggleLike(id); err != nil {
		encodeError(err, w)
		return
	}
	redirectHome(w, r)
}

func (h *handler) addComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := h.postID(w, ps)
	if !ok {
		return
	}
	_, err := h.store.AddComment(id, r.PostFormValue("content"))
	switch {
	case errors.Is(err, feed.ErrPostNotFound):
		encodeError(err, w)
		return
	case err != nil:
		h.logger.Debugw("comment rejected", "id", id, "error", err)
	}
	h.view.Expand(id)
	redirectHome(w, r)
}

func (h *handler) toggleComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := h.postID(w, ps)
	if !ok {
		return
	}
	if _, err := h.store.Post(id); err != nil {
		encodeError(err, w)
		return
	}
	h.view.ToggleComments(id)
	redirectHome(w, r)
}

func (h *handler) listPosts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	posts := h.store.Posts()
	res := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		res = append(res, newPostResponse(p))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.logger.Errorw("error encoding posts", "error", err)
	}
}

func (h *handler) postID(w http.ResponseWriter, ps httprouter.Params) (feed.PostID, bool) {
	id := ps.ByName("id")
	if !feed.IsValidID(id) {
		encodeError(feed.ErrInvalidID, w)
		return "", false
	}
	return feed.PostID(id), true
}

func newPostResponse(p feed.Post) postResponse {
	comments := make([]commentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, commentResponse{ID: c.ID, Username: c.Username, Content: c.Content, HTML: string(c.Formatted())})
	}
	return postResponse{
		ID:        p.ID,
		Content:   p.Content,
		HTML:      string(p.Formatted()),
		Likes:     p.Likes,
		Liked:     p.Liked,
		Timestamp: p.Timestamp,
		Comments:  comments,
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func encodeError(err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	switch err {
	case feed.ErrPostNotFound:
		w.WriteHeader(http.StatusNotFound)
	case feed.ErrInvalidID:
		w.WriteHeader(http.StatusBadRequest)
	case feed.ErrEmptyContent, feed.ErrContentTooLong, feed.ErrEmptyComment, feed.ErrUnchanged:
		w.WriteHeader(http.StatusUnprocessableEntity)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
