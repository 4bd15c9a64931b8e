package memory

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
)

func TestCreateDiscussion(t *testing.T) {
	t.Run("assigns increasing ids and one opening message", func(t *testing.T) {
		s, _ := newTestStorage(t)

		var lastId domain.DiscussionId
		for i, title := range []string{"first", "second", "third"} {
			d, err := s.CreateDiscussion(creation(title, "body", "Sarah M."))
			require.NoError(t, err)
			assert.Greater(t, d.Id, lastId)
			assert.Equal(t, domain.DiscussionId(i+1), d.Id)
			require.Len(t, d.Messages, 1)
			assert.Equal(t, domain.MsgId(1), d.Messages[0].Id)
			assert.Equal(t, "Sarah M.", d.Messages[0].Author)
			assert.Equal(t, "body", d.Messages[0].Text)
			assert.Equal(t, 0, d.ReplyCount)
			assert.Equal(t, 0, d.ViewCount)
			assert.Equal(t, d.CreatedAt, d.LastActiveAt)
			assert.Equal(t, d.CreatedAt, d.Messages[0].CreatedAt)
			lastId = d.Id
		}
		assert.Equal(t, 3, s.Count())
	})

	t.Run("new discussion goes to the head of the list", func(t *testing.T) {
		s, _ := newTestStorage(t)
		require.NoError(t, s.Seed([]domain.Discussion{seeded("A", 1, baseTime), seeded("B", 1, baseTime)}))

		d, err := s.CreateDiscussion(creation("C", "body", "Emma L."))
		require.NoError(t, err)
		assert.Equal(t, domain.DiscussionId(3), d.Id)

		list, err := s.ListDiscussions(domain.FilterNone, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "A", "B"}, titles(list))
	})

	t.Run("invalid input leaves the store unchanged", func(t *testing.T) {
		cases := []struct {
			name  string
			data  domain.DiscussionCreationData
			field string
		}{
			{"empty title", creation("", "x", "A"), "title"},
			{"blank title", creation("  \t", "x", "A"), "title"},
			{"empty content", creation("x", "", "A"), "text"},
			{"blank content", creation("x", "\n ", "A"), "text"},
			{"no author", creation("x", "y", ""), "author"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				s, _ := newTestStorage(t)
				_, err := s.CreateDiscussion(creation("existing", "body", "A"))
				require.NoError(t, err)

				_, err = s.CreateDiscussion(tc.data)

				require.Error(t, err)
				var vErr *errors.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tc.field, vErr.Field)
				assert.Equal(t, 1, s.Count())
			})
		}
	})

	t.Run("returned value is a snapshot", func(t *testing.T) {
		s, _ := newTestStorage(t)
		d, err := s.CreateDiscussion(creation("t", "op", "A"))
		require.NoError(t, err)
		d.Messages[0].Text = "mutated"
		d.Title = "mutated"

		got, err := s.GetDiscussion(d.Id)
		require.NoError(t, err)
		assert.Equal(t, "t", got.Title)
		assert.Equal(t, "op", got.Messages[0].Text)
	})
}

func TestCreateThenSelectRoundTrip(t *testing.T) {
	s, _ := newTestStorage(t)
	created, err := s.CreateDiscussion(creation("Tips for First-Time Volunteers", "Any advice?", "Sarah M."))
	require.NoError(t, err)

	selected, err := s.GetDiscussion(created.Id)
	require.NoError(t, err)

	if diff := cmp.Diff(created, selected); diff != "" {
		t.Errorf("selected discussion differs from created one (-created +selected):\n%s", diff)
	}
}

func TestGetDiscussion_NotFound(t *testing.T) {
	s, _ := newTestStorage(t)
	_, err := s.GetDiscussion(42)
	require.Error(t, err)
	var nf *errors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(42), nf.Id)
}

func TestRecordView(t *testing.T) {
	s, _ := newTestStorage(t)
	d, err := s.CreateDiscussion(creation("t", "op", "A"))
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		viewed, err := s.RecordView(d.Id)
		require.NoError(t, err)
		assert.Equal(t, i, viewed.ViewCount)
	}

	got, err := s.GetDiscussion(d.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ViewCount, "GetDiscussion itself does not count views")

	_, err = s.RecordView(99)
	assert.True(t, errors.Is[*errors.NotFoundError](err))
}

func TestListDiscussions(t *testing.T) {
	t.Run("popular orders by views descending", func(t *testing.T) {
		s, _ := newTestStorage(t)
		require.NoError(t, s.Seed([]domain.Discussion{
			seeded("A", 156, baseTime),
			seeded("B", 203, baseTime),
			seeded("C", 289, baseTime),
		}))

		list, err := s.ListDiscussions(domain.FilterPopular, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "B", "A"}, titles(list))
		for i := 1; i < len(list); i++ {
			assert.GreaterOrEqual(t, list[i-1].ViewCount, list[i].ViewCount)
		}
	})

	t.Run("popular keeps natural order for ties", func(t *testing.T) {
		s, _ := newTestStorage(t)
		require.NoError(t, s.Seed([]domain.Discussion{
			seeded("A", 10, baseTime),
			seeded("B", 50, baseTime),
			seeded("C", 10, baseTime),
			seeded("D", 10, baseTime),
		}))

		list, err := s.ListDiscussions(domain.FilterPopular, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A", "C", "D"}, titles(list))
	})

	t.Run("recent orders by last activity, newest first", func(t *testing.T) {
		s, _ := newTestStorage(t)
		require.NoError(t, s.Seed([]domain.Discussion{
			seeded("two hours", 0, baseTime.Add(-2*time.Hour)),
			seeded("four hours", 0, baseTime.Add(-4*time.Hour)),
			seeded("one day", 0, baseTime.Add(-24*time.Hour)),
			seeded("ten minutes", 0, baseTime.Add(-10*time.Minute)),
		}))

		list, err := s.ListDiscussions(domain.FilterRecent, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"ten minutes", "two hours", "four hours", "one day"}, titles(list))
	})

	t.Run("recent reflects replies", func(t *testing.T) {
		s, _ := newTestStorage(t)
		older, err := s.CreateDiscussion(creation("older", "op", "A"))
		require.NoError(t, err)
		_, err = s.CreateDiscussion(creation("newer", "op", "A"))
		require.NoError(t, err)

		_, err = s.AppendReply(older.Id, domain.MessageCreationData{Author: "B", Text: "bump"})
		require.NoError(t, err)

		list, err := s.ListDiscussions(domain.FilterRecent, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"older", "newer"}, titles(list))
	})

	t.Run("mine selects by author", func(t *testing.T) {
		s, _ := newTestStorage(t)
		for _, author := range []string{"Sarah M.", "John D.", "Sarah M."} {
			_, err := s.CreateDiscussion(creation("by "+author, "op", author))
			require.NoError(t, err)
		}

		list, err := s.ListDiscussions(domain.FilterMine, &domain.Identity{Name: "Sarah M."})
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, d := range list {
			assert.Equal(t, "Sarah M.", d.Author)
		}
		assert.Equal(t, []domain.DiscussionId{3, 1}, []domain.DiscussionId{list[0].Id, list[1].Id})
	})

	t.Run("mine without identity is empty", func(t *testing.T) {
		s, _ := newTestStorage(t)
		_, err := s.CreateDiscussion(creation("t", "op", "A"))
		require.NoError(t, err)

		list, err := s.ListDiscussions(domain.FilterMine, nil)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("listing has no side effects", func(t *testing.T) {
		s, _ := newTestStorage(t)
		require.NoError(t, s.Seed([]domain.Discussion{seeded("A", 3, baseTime), seeded("B", 5, baseTime)}))

		first, err := s.ListDiscussions(domain.FilterPopular, nil)
		require.NoError(t, err)
		second, err := s.ListDiscussions(domain.FilterPopular, nil)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(first, second))

		natural, err := s.ListDiscussions(domain.FilterNone, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, titles(natural))
	})

	t.Run("unknown filter", func(t *testing.T) {
		s, _ := newTestStorage(t)
		_, err := s.ListDiscussions(domain.Filter("oldest"), nil)
		assert.True(t, errors.Is[*errors.ValidationError](err))
	})
}

func TestSeed(t *testing.T) {
	s, _ := newTestStorage(t)
	d := seeded("A", 7, baseTime)
	d.Id = 40
	d.ReplyCount = 24
	d.Messages = append(d.Messages, domain.Message{Id: 9, Author: "John D.", Text: "reply"})

	require.NoError(t, s.Seed([]domain.Discussion{d}))

	got, err := s.GetDiscussion(1)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ViewCount)
	assert.Equal(t, 24, got.ReplyCount)
	assert.Equal(t, []domain.MsgId{1, 2}, []domain.MsgId{got.Messages[0].Id, got.Messages[1].Id})

	assert.Error(t, s.Seed([]domain.Discussion{{DiscussionMetadata: domain.DiscussionMetadata{Title: "empty"}}}))
}
