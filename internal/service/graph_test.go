package service_test

// End-to-end behavior of the social graph and feed composition, run against
// in-memory repositories that honor the same contract as the SQL ones
// (idempotent edge insert, duplicate-safe feed union, created_at/id ordering).

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/model"
	"github.com/heironeous/microblog/internal/repository"
	"github.com/heironeous/microblog/internal/repository/mocks"
	"github.com/heironeous/microblog/internal/repository/postgres"
	"github.com/heironeous/microblog/internal/repository/redisrepo"
	"github.com/heironeous/microblog/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.FullUser
	posts []*model.FullPost
	edges map[model.Follower]struct{}
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[uuid.UUID]*model.FullUser),
		edges: make(map[model.Follower]struct{}),
	}
}

func (s *memStore) addUser(username, email string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := &model.FullUser{ID: uuid.New(), Username: username, Email: email}
	s.users[user.ID] = user
	return model.UserFromFullUser(*user)
}

func (s *memStore) addPost(author model.User, body string, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, &model.FullPost{
		ID:             uuid.New(),
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Body:           body,
		CreatedAt:      createdAt,
	})
}

// memUserRepo implements postgres.User over the store.
type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	created := r.store.addUser(user.Username, user.Email)
	return &created, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.FullUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.FullUser, error) {
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (r *memUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return nil
}

func (r *memUserRepo) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	return nil
}

// memFollowerRepo implements postgres.Follower over the store.
type memFollowerRepo struct{ store *memStore }

func (r *memFollowerRepo) Follow(ctx context.Context, edge model.Follower) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.edges[edge] = struct{}{}
	return nil
}

func (r *memFollowerRepo) Unfollow(ctx context.Context, edge model.Follower) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.edges, edge)
	return nil
}

func (r *memFollowerRepo) IsFollowing(ctx context.Context, edge model.Follower) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.edges[edge]
	return ok, nil
}

func (r *memFollowerRepo) FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var followers []*model.FullFollower
	for edge := range r.store.edges {
		if edge.FollowedID == userID {
			user := r.store.users[edge.FollowerID]
			followers = append(followers, &model.FullFollower{ID: user.ID, Username: user.Username})
		}
	}
	return followers, nil
}

func (r *memFollowerRepo) FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var following []*model.FullFollower
	for edge := range r.store.edges {
		if edge.FollowerID == userID {
			user := r.store.users[edge.FollowedID]
			following = append(following, &model.FullFollower{ID: user.ID, Username: user.Username})
		}
	}
	return following, nil
}

// memPostRepo implements postgres.Post over the store.
type memPostRepo struct{ store *memStore }

func (r *memPostRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	author := r.store.users[post.AuthorID]
	r.store.addPost(model.UserFromFullUser(*author), post.Body, post.CreatedAt)
	return &post, nil
}

func (r *memPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.FullPost, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, post := range r.store.posts {
		if post.ID == id {
			return post, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memPostRepo) FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var posts []*model.FullPost
	for _, post := range r.store.posts {
		if post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	return paginate(sortNewestFirst(posts), limit, offset), nil
}

func (r *memPostRepo) FindLatest(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return paginate(sortNewestFirst(r.store.posts), limit, offset), nil
}

func (r *memPostRepo) Feed(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[uuid.UUID]struct{})
	var feed []*model.FullPost
	for _, post := range r.store.posts {
		_, followed := r.store.edges[model.Follower{FollowerID: userID, FollowedID: post.AuthorID}]
		if post.AuthorID != userID && !followed {
			continue
		}
		if _, dup := seen[post.ID]; dup {
			continue
		}
		seen[post.ID] = struct{}{}
		feed = append(feed, post)
	}
	return paginate(sortNewestFirst(feed), limit, offset), nil
}

func sortNewestFirst(posts []*model.FullPost) []*model.FullPost {
	sorted := make([]*model.FullPost, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() > sorted[j].ID.String()
	})
	return sorted
}

func paginate(posts []*model.FullPost, limit int, offset int) []*model.FullPost {
	if offset >= len(posts) {
		return nil
	}
	posts = posts[offset:]
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}

func newGraphService(t *testing.T) (*service.Service, *memStore) {
	t.Helper()

	store := newMemStore()
	rdb := new(mocks.RedisDefault)
	rdb.On("Get", mock.Anything, mock.Anything).Return(redis.NewStringResult("", redis.Nil))
	rdb.On("SetJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	rdb.On("Del", mock.Anything, mock.Anything).Return(redis.NewIntResult(0, nil))

	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			User:     &memUserRepo{store: store},
			Post:     &memPostRepo{store: store},
			Follower: &memFollowerRepo{store: store},
		},
		Redis: &redisrepo.RedisRepository{Default: rdb},
	}

	return service.New(zaptestLogger(), repo, nil), store
}

func TestGraph_FollowIsDirected(t *testing.T) {
	services, store := newGraphService(t)
	ctx := context.Background()

	alice := store.addUser("alice", "alice@example.com")
	bob := store.addUser("bob", "bob@example.com")

	require.NoError(t, services.User.Follow(ctx, alice, bob.ID))

	following, err := services.User.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	reverse, err := services.User.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse, "following is directed; the reverse edge must not appear")
}

func TestGraph_SelfFollowNeverSticks(t *testing.T) {
	services, store := newGraphService(t)
	ctx := context.Background()

	alice := store.addUser("alice", "alice@example.com")

	require.NoError(t, services.User.Follow(ctx, alice, alice.ID))

	following, err := services.User.IsFollowing(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestGraph_UnfollowRoundTrip(t *testing.T) {
	services, store := newGraphService(t)
	ctx := context.Background()

	alice := store.addUser("alice", "alice@example.com")
	bob := store.addUser("bob", "bob@example.com")

	require.NoError(t, services.User.Follow(ctx, alice, bob.ID))
	require.NoError(t, services.User.Unfollow(ctx, alice, bob.ID))

	following, err := services.User.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestGraph_FollowTwiceKeepsOneEdge(t *testing.T) {
	services, store := newGraphService(t)
	ctx := context.Background()

	alice := store.addUser("alice", "alice@example.com")
	bob := store.addUser("bob", "bob@example.com")

	require.NoError(t, services.User.Follow(ctx, alice, bob.ID))
	require.NoError(t, services.User.Follow(ctx, alice, bob.ID))

	followers, err := services.User.FindFollowers(ctx, bob.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, followers, 1)
}

func TestGraph_FeedScenario(t *testing.T) {
	services, store := newGraphService(t)
	ctx := context.Background()

	alice := store.addUser("alice", "alice@example.com")
	bob := store.addUser("bob", "bob@example.com")
	carol := store.addUser("carol", "carol@example.com")

	require.NoError(t, services.User.Follow(ctx, alice, bob.ID))

	t1 := time.Now().Add(-time.Hour)
	t2 := time.Now()
	store.addPost(bob, "hello", t1)
	store.addPost(alice, "world", t2)
	store.addPost(carol, "unseen", t2)

	feed, err := services.Post.Feed(ctx, alice.ID, 50, 0)
	require.NoError(t, err)

	require.Len(t, feed, 2)
	assert.Equal(t, "world", feed[0].Body, "newest post first")
	assert.Equal(t, "hello", feed[1].Body)
	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i-1].CreatedAt.Before(feed[i].CreatedAt))
	}

	// After unfollowing, bob's post leaves the feed; alice's own posts stay.
	require.NoError(t, services.User.Unfollow(ctx, alice, bob.ID))

	feed, err = services.Post.Feed(ctx, alice.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "world", feed[0].Body)
}

func TestGraph_FeedIsStableAcrossCalls(t *testing.T) {
	services, store := newGraphService(t)
	ctx := context.Background()

	alice := store.addUser("alice", "alice@example.com")
	now := time.Now()
	store.addPost(alice, "first", now)
	store.addPost(alice, "second", now)
	store.addPost(alice, "third", now)

	feed1, err := services.Post.Feed(ctx, alice.ID, 50, 0)
	require.NoError(t, err)
	feed2, err := services.Post.Feed(ctx, alice.ID, 50, 0)
	require.NoError(t, err)

	require.Equal(t, len(feed1), len(feed2))
	for i := range feed1 {
		assert.Equal(t, feed1[i].ID, feed2[i].ID, "equal timestamps must not reorder between calls")
	}
}
