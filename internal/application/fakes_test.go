package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	repo "github.com/oksasatya/vibhive/internal/domain/repository"
	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/pagination"
)

// memDB is an in-memory stand-in for the document store. The repository
// fakes below share one instance so joins see each other's writes.
type memDB struct {
	mu      sync.Mutex
	users   map[primitive.ObjectID]*entity.User
	posts   map[primitive.ObjectID]*entity.Post
	likes   map[[2]primitive.ObjectID]time.Time // post, likedBy
	follows map[[2]primitive.ObjectID]time.Time // follower, followee
}

func newMemDB() *memDB {
	return &memDB{
		users:   map[primitive.ObjectID]*entity.User{},
		posts:   map[primitive.ObjectID]*entity.Post{},
		likes:   map[[2]primitive.ObjectID]time.Time{},
		follows: map[[2]primitive.ObjectID]time.Time{},
	}
}

type memUsers struct{ db *memDB }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, x := range r.db.users {
		if x.Username == u.Username || x.Email == u.Email {
			return apperror.Conflict("User with email or username already exists")
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r memUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (r memUsers) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r memUsers) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	login = strings.ToLower(login)
	return r.find(func(u *entity.User) bool { return u.Username == login || u.Email == login })
}

func (r memUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	_, err := r.find(func(u *entity.User) bool { return u.Username == username || u.Email == email })
	return err == nil, nil
}

func (r memUsers) Update(_ context.Context, id primitive.ObjectID, p repo.UserPatch) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.CoverImage != nil {
		u.CoverImage = *p.CoverImage
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) SetPassword(_ context.Context, id primitive.ObjectID, hash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return apperror.NotFound("user")
	}
	u.Password = hash
	return nil
}

func (r memUsers) SetRefreshToken(_ context.Context, id primitive.ObjectID, token *string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return apperror.NotFound("user")
	}
	u.RefreshToken = token
	return nil
}

func (r memUsers) profile(u *entity.User) *entity.ProfileView {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p := &entity.ProfileView{ID: u.ID, FullName: u.FullName, Username: u.Username, Email: u.Email, Avatar: u.Avatar}
	for edge := range r.db.follows {
		if edge[1] == u.ID {
			p.FollowersCount++
		}
		if edge[0] == u.ID {
			p.FollowingCount++
		}
	}
	return p
}

func (r memUsers) ProfileByID(ctx context.Context, id primitive.ObjectID) (*entity.ProfileView, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.profile(u), nil
}

func (r memUsers) ProfileByUsername(ctx context.Context, username string) (*entity.ProfileView, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return r.profile(u), nil
}

func (r memUsers) SummaryByUsername(ctx context.Context, username string) (*entity.UserSummary, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &entity.UserSummary{ID: u.ID, Username: u.Username, FullName: u.FullName, Email: u.Email, Avatar: u.Avatar}, nil
}

type memPosts struct{ db *memDB }

func (r memPosts) Create(_ context.Context, p *entity.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().Add(time.Duration(len(r.db.posts)) * time.Millisecond)
	cp := *p
	r.db.posts[p.ID] = &cp
	return nil
}

func (r memPosts) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[id]
	if !ok {
		return nil, apperror.NotFound("post")
	}
	cp := *p
	return &cp, nil
}

// view mirrors the post projection: the like count ignores the viewer and
// isLiked is false for anonymous viewers. Callers hold the lock.
func (r memPosts) view(p *entity.Post, viewer *primitive.ObjectID) entity.PostView {
	v := entity.PostView{ID: p.ID, Content: p.Content, Tags: p.Tags, Images: p.Images, CreatedAt: p.CreatedAt}
	for edge := range r.db.likes {
		if edge[0] == p.ID {
			v.Likes++
		}
	}
	if viewer != nil {
		_, v.IsLiked = r.db.likes[[2]primitive.ObjectID{p.ID, *viewer}]
	}
	if u, ok := r.db.users[p.Owner]; ok {
		v.Owner = &entity.PostOwner{ID: u.ID, Account: &entity.Account{ID: u.ID, Username: u.Username, Email: u.Email, Avatar: u.Avatar}}
	}
	return v
}

func (r memPosts) View(_ context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (*entity.PostView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[id]
	if !ok {
		return nil, apperror.NotFound("post")
	}
	v := r.view(p, viewer)
	return &v, nil
}

func (r memPosts) Feed(_ context.Context, f repo.PostFilter, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var all []*entity.Post
	for _, p := range r.db.posts {
		if f.Owner == nil || p.Owner == *f.Owner {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	var docs []entity.PostView
	for i := opts.Skip(); i < int64(len(all)) && i < opts.Skip()+opts.Limit; i++ {
		docs = append(docs, r.view(all[i], viewer))
	}
	return pagination.NewPage(docs, int64(len(all)), opts), nil
}

func (r memPosts) UpdateDetails(_ context.Context, id primitive.ObjectID, content *string, tags []string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[id]
	if !ok {
		return apperror.NotFound("post")
	}
	if content != nil {
		p.Content = *content
	}
	if tags != nil {
		p.Tags = tags
	}
	return nil
}

func (r memPosts) ReplaceImages(_ context.Context, id primitive.ObjectID, images []entity.Image) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[id]
	if !ok {
		return apperror.NotFound("post")
	}
	p.Images = images
	return nil
}

func (r memPosts) DeleteOwned(_ context.Context, id, owner primitive.ObjectID) (*entity.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[id]
	if !ok || p.Owner != owner {
		return nil, apperror.NotFound("post")
	}
	delete(r.db.posts, id)
	return p, nil
}

type memLikes struct{ db *memDB }

func (r memLikes) Toggle(_ context.Context, post, user primitive.ObjectID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	k := [2]primitive.ObjectID{post, user}
	if _, ok := r.db.likes[k]; ok {
		delete(r.db.likes, k)
		return false, nil
	}
	r.db.likes[k] = time.Now()
	return true, nil
}

func (r memLikes) IsLiked(_ context.Context, post, user primitive.ObjectID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.likes[[2]primitive.ObjectID{post, user}]
	return ok, nil
}

func (r memLikes) CountByPost(_ context.Context, post primitive.ObjectID) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for k := range r.db.likes {
		if k[0] == post {
			n++
		}
	}
	return n, nil
}

func (r memLikes) DeleteByPost(_ context.Context, post primitive.ObjectID) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for k := range r.db.likes {
		if k[0] == post {
			delete(r.db.likes, k)
			n++
		}
	}
	return n, nil
}

type memFollows struct{ db *memDB }

func (r memFollows) Toggle(_ context.Context, follower, followee primitive.ObjectID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	k := [2]primitive.ObjectID{follower, followee}
	if _, ok := r.db.follows[k]; ok {
		delete(r.db.follows, k)
		return false, nil
	}
	r.db.follows[k] = time.Now()
	return true, nil
}

func (r memFollows) IsFollowing(_ context.Context, follower, followee primitive.ObjectID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.follows[[2]primitive.ObjectID{follower, followee}]
	return ok, nil
}

func (r memFollows) Counts(_ context.Context, user primitive.ObjectID) (int64, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var followers, following int64
	for k := range r.db.follows {
		if k[1] == user {
			followers++
		}
		if k[0] == user {
			following++
		}
	}
	return followers, following, nil
}

func (r memFollows) List(_ context.Context, side repo.FollowSide, user primitive.ObjectID, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.FollowUserView], error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var rows []entity.FollowUserView
	for k := range r.db.follows {
		match, other := k[1], k[0]
		if side == repo.Following {
			match, other = k[0], k[1]
		}
		u, ok := r.db.users[other]
		if match != user || !ok {
			continue
		}
		row := entity.FollowUserView{UserSummary: entity.UserSummary{ID: u.ID, Username: u.Username}}
		if viewer != nil {
			_, row.IsFollowing = r.db.follows[[2]primitive.ObjectID{*viewer, u.ID}]
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Username < rows[j].Username })
	total := int64(len(rows))
	lo, hi := min(opts.Skip(), total), min(opts.Skip()+opts.Limit, total)
	return pagination.NewPage(rows[lo:hi], total, opts), nil
}

// memImages records every Put and Delete. failOn makes Put fail for that
// filename.
type memImages struct {
	mu      sync.Mutex
	failOn  string
	put     []string
	deleted []string
}

func (s *memImages) Put(_ context.Context, folder string, up repo.Upload) (repo.StoredImage, error) {
	if up.Filename == s.failOn {
		return repo.StoredImage{}, errors.New("upload failed")
	}
	key := folder + "/" + up.Filename
	s.mu.Lock()
	s.put = append(s.put, key)
	s.mu.Unlock()
	return repo.StoredImage{URL: "https://cdn.test/" + key, Key: key}, nil
}

func (s *memImages) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memImages) deletedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]string(nil), s.deleted...)
	sort.Strings(out)
	return out
}

func upload(name string) repo.Upload {
	return repo.Upload{
		Filename:    name,
		ContentType: "image/png",
		Open:        func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("png")), nil },
	}
}

func uploads(names ...string) []repo.Upload {
	out := make([]repo.Upload, len(names))
	for i, n := range names {
		out[i] = upload(n)
	}
	return out
}

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body)
	return p.err
}

type recordingSearch struct {
	indexed []string
	hits    []entity.UserSummary
}

func (s *recordingSearch) Index(_ context.Context, u *entity.User) error {
	s.indexed = append(s.indexed, u.Username)
	return nil
}

func (s *recordingSearch) Search(_ context.Context, q string, _ int) ([]entity.UserSummary, error) {
	if q == "fail" {
		return nil, fmt.Errorf("es unavailable")
	}
	return s.hits, nil
}
