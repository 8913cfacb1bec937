package feed

import (
	"context"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFeedScenarios(t *testing.T) {
	Convey("Given an empty feed backed by local storage", t, func() {
		kv := NewMemoryKeyValueStore()
		store := NewStore(NewAdapter(kv))

		Convey("When the user posts \"Hello #test\"", func() {
			p, err := store.CreatePost("Hello #test")
			So(err, ShouldBeNil)

			Convey("Then after a reload the feed shows exactly that post", func() {
				posts := NewStore(NewAdapter(kv)).Posts()

				So(posts, ShouldHaveLength, 1)
				So(posts[0].ID, ShouldEqual, p.ID)
				So(string(posts[0].Formatted()), ShouldContainSubstring, `<a href="#" class="hashtag">#test</a>`)
				So(posts[0].Likes, ShouldEqual, 0)
				So(posts[0].Comments, ShouldBeEmpty)
			})

			Convey("And the user likes it", func() {
				liked, err := store.ToggleLike(p.ID)
				So(err, ShouldBeNil)
				So(liked.Likes, ShouldEqual, 1)
				So(liked.Liked, ShouldBeTrue)

				Convey("Then liking it again takes the like back", func() {
					unliked, err := store.ToggleLike(p.ID)
					So(err, ShouldBeNil)
					So(unliked.Likes, ShouldEqual, 0)
					So(unliked.Liked, ShouldBeFalse)
				})
			})

			Convey("And the user comments \"nice!\"", func() {
				_, err := store.AddComment(p.ID, "nice!")
				So(err, ShouldBeNil)

				Convey("Then the post has one comment from the current user", func() {
					got, err := store.Post(p.ID)
					So(err, ShouldBeNil)
					So(got.Comments, ShouldHaveLength, 1)
					So(got.Comments[0].Username, ShouldEqual, DefaultUsername)
					So(got.Comments[0].Content, ShouldEqual, "nice!")
				})
			})

			Convey("And the user declines the delete confirmation", func() {
				deleted, err := store.DeletePost(p.ID, Never)
				So(err, ShouldBeNil)
				So(deleted, ShouldBeFalse)

				Convey("Then the post is still there", func() {
					So(store.Len(), ShouldEqual, 1)
				})
			})

			Convey("And the user confirms the delete", func() {
				_, _ = store.AddComment(p.ID, "gone too")
				deleted, err := store.DeletePost(p.ID, Always)
				So(err, ShouldBeNil)
				So(deleted, ShouldBeTrue)

				Convey("Then the post and its comments are gone for good", func() {
					So(store.Len(), ShouldEqual, 0)
					So(NewStore(NewAdapter(kv)).Len(), ShouldEqual, 0)

					blob, err := kv.Get(context.Background(), DefaultStorageKey)
					So(err, ShouldBeNil)
					So(blob, ShouldNotContainSubstring, "gone too")
				})
			})
		})

		Convey("When the user posts nothing or too much", func() {
			_, err1 := store.CreatePost("")
			_, err2 := store.CreatePost(strings.Repeat("x", MaxContentLength+1))

			Convey("Then the feed stays empty", func() {
				So(err1, ShouldEqual, ErrEmptyContent)
				So(err2, ShouldEqual, ErrContentTooLong)
				So(store.Len(), ShouldEqual, 0)
			})
		})

		Convey("When several posts with likes and comments are saved and loaded", func() {
			a, _ := store.CreatePost("a")
			b, _ := store.CreatePost("b")
			c, _ := store.CreatePost("c")
			_, _ = store.ToggleLike(a.ID)
			_, _ = store.AddComment(b.ID, "one")
			_, _ = store.AddComment(b.ID, "two")

			Convey("Then order, like counts and comments survive", func() {
				loaded := NewStore(NewAdapter(kv)).Posts()

				So(loaded, ShouldHaveLength, 3)
				So(loaded[0].ID, ShouldEqual, c.ID)
				So(loaded[1].ID, ShouldEqual, b.ID)
				So(loaded[2].ID, ShouldEqual, a.ID)
				So(loaded[2].Likes, ShouldEqual, 1)
				So(loaded[1].Comments, ShouldHaveLength, 2)
				So(loaded[1].Comments[0].Username, ShouldEqual, DefaultUsername)
			})
		})
	})
}
