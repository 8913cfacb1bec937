package web

import (
	"sync"

	"github.com/jimiolaniyan/feed"
)

// ViewState holds the transient per-post display flags. None of it is
// persisted.
type ViewState struct {
	mu    sync.Mutex
	posts map[feed.PostID]postView
}

type postView struct {
	editing  bool
	expanded bool
}

func NewViewState() *ViewState {
	return &ViewState{posts: map[feed.PostID]postView{}}
}

func (v *ViewState) Editing(id feed.PostID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.posts[id].editing
}

func (v *ViewState) Expanded(id feed.PostID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.posts[id].expanded
}

func (v *ViewState) SetEditing(id feed.PostID, editing bool) {
	v.update(id, func(pv *postView) { pv.editing = editing })
}

func (v *ViewState) Expand(id feed.PostID) {
	v.update(id, func(pv *postView) { pv.expanded = true })
}

func (v *ViewState) ToggleComments(id feed.PostID) bool {
	var expanded bool
	v.update(id, func(pv *postView) {
		pv.expanded = !pv.expanded
		expanded = pv.expanded
	})
	return expanded
}

func (v *ViewState) Forget(id feed.PostID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.posts, id)
}

func (v *ViewState) update(id feed.PostID, fn func(*postView)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	pv := v.posts[id]
	fn(&pv)
	if pv == (postView{}) {
		delete(v.posts, id)
		return
	}
	v.posts[id] = pv
}
