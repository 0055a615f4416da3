package main

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"patitas/internal/domain/advice"
	"patitas/internal/domain/collection"
	"patitas/internal/domain/comments"
	"patitas/internal/domain/daycares"
	"patitas/internal/domain/likes"
	"patitas/internal/domain/posts"
	"patitas/internal/domain/users"
)

type fakeUsers struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]*users.User
	refresh map[int64]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*users.User{}, refresh: map[int64]string{}}
}

func (f *fakeUsers) add(alias, email, password string) *users.User {
	u := &users.User{Alias: alias, Email: email, CreatedAt: time.Now()}
	if err := u.Password.Set(password); err != nil {
		panic(err)
	}
	if err := f.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

func (f *fakeUsers) Create(_ context.Context, u *users.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return users.ErrDuplicateEmail
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) SaveRefreshToken(_ context.Context, userID int64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh[userID] = token
	return nil
}

func (f *fakeUsers) DeleteRefreshToken(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.refresh, userID)
	return nil
}

func (f *fakeUsers) GetRefreshToken(_ context.Context, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.refresh[userID]; ok {
		return t, nil
	}
	return "", users.ErrNotFound
}

func (f *fakeUsers) UpdateResetToken(_ context.Context, email, token string, exp time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			u.ResetPasswordToken = token
			u.ResetPasswordExpires = &exp
			return nil
		}
	}
	return users.ErrNotFound
}

func (f *fakeUsers) GetByResetToken(_ context.Context, token string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.ResetPasswordToken != "" && u.ResetPasswordToken == token {
			return u, nil
		}
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) UpdatePassword(_ context.Context, u *users.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ResetPasswordToken = ""
	u.ResetPasswordExpires = nil
	delete(f.refresh, u.ID)
	return nil
}

type fakeAdvice struct {
	mu     sync.Mutex
	nextID int64
	docs   map[int64]*advice.Advice
	lastF  advice.Filter
}

func newFakeAdvice() *fakeAdvice {
	return &fakeAdvice{docs: map[int64]*advice.Advice{}}
}

func (f *fakeAdvice) Create(_ context.Context, a *advice.Advice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a.ID = f.nextID
	a.LikedBy = []int64{}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	f.docs[a.ID] = &cp
	return nil
}

func (f *fakeAdvice) GetByID(_ context.Context, id int64) (*advice.Advice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.docs[id]
	if !ok {
		return nil, advice.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdvice) List(_ context.Context, filter advice.Filter) ([]advice.Advice, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastF = filter

	out := []advice.Advice{}
	for _, a := range f.docs {
		if filter.AuthorID != nil && (a.AuthorID == nil || *a.AuthorID != *filter.AuthorID) {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, len(out), nil
}

func (f *fakeAdvice) owned(id, userID int64) (*advice.Advice, error) {
	a, ok := f.docs[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	if a.AuthorID == nil || *a.AuthorID != userID {
		return nil, posts.ErrForbidden
	}
	return a, nil
}

func (f *fakeAdvice) Update(_ context.Context, id, userID int64, updates map[string]any) (*advice.Advice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(updates) == 0 {
		return nil, posts.ErrNoFields
	}
	a, err := f.owned(id, userID)
	if err != nil {
		return nil, err
	}
	if v, ok := updates["title"]; ok {
		a.Title = v.(string)
	}
	if v, ok := updates["category"]; ok {
		a.Category = v.(string)
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdvice) Delete(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.owned(id, userID); err != nil {
		return err
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeAdvice) ToggleLike(_ context.Context, id, userID int64) (*likes.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.docs[id]
	if !ok {
		return nil, likes.ErrNotFound
	}
	next, liked := likes.Flip(a.LikedBy, userID)
	a.LikedBy = next
	a.LikeCount = len(next)
	return &likes.Result{Liked: liked, LikeCount: a.LikeCount, LikedBy: next}, nil
}

type fakeDaycares struct {
	daycares.Store
	docs map[int64]*daycares.Daycare
}

func (f *fakeDaycares) GetByID(_ context.Context, id int64) (*daycares.Daycare, error) {
	if d, ok := f.docs[id]; ok {
		return d, nil
	}
	return nil, daycares.ErrNotFound
}

type fakeComments struct {
	mu           sync.Mutex
	nextID       int64
	list         []comments.Comment
	parents      map[collection.Name]map[int64]bool
	counterCalls int
}

func newFakeComments() *fakeComments {
	return &fakeComments{parents: map[collection.Name]map[int64]bool{}}
}

func (f *fakeComments) addParent(coll collection.Name, id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.parents[coll] == nil {
		f.parents[coll] = map[int64]bool{}
	}
	f.parents[coll][id] = true
}

func (f *fakeComments) insert(c *comments.Comment) error {
	if !f.parents[c.Collection][c.ParentID] {
		return comments.ErrNotFound
	}
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	f.list = append(f.list, *c)
	return nil
}

func (f *fakeComments) Create(_ context.Context, c *comments.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(c)
}

func (f *fakeComments) CreateWithCounter(_ context.Context, c *comments.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counterCalls++
	return f.insert(c)
}

func (f *fakeComments) List(_ context.Context, coll collection.Name, parentID int64) ([]comments.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []comments.Comment{}
	for _, c := range f.list {
		if c.Collection == coll && c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComments) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.list), f.counterCalls
}
