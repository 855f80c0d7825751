package handlers_test

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/grantbelcher/DevConnector/database"
	"github.com/grantbelcher/DevConnector/models"
)

// In-memory stores mirroring the semantics of the database package, so
// handler tests can run the full router without a MongoDB instance.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return database.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[primitive.ObjectID]*models.Profile // keyed by owner
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[primitive.ObjectID]*models.Profile{}}
}

func (s *fakeProfileStore) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProfileStore) FindAll(_ context.Context) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Profile{}
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeProfileStore) Upsert(_ context.Context, userID primitive.ObjectID, in models.ProfileInput) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		p = &models.Profile{
			ID:         primitive.NewObjectID(),
			User:       userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
		}
		s.profiles[userID] = p
	}

	p.Status = in.Status
	p.Skills = models.SplitSkills(in.Skills)
	if in.Company != "" {
		p.Company = in.Company
	}
	if in.Website != "" {
		p.Website = in.Website
	}
	if in.Location != "" {
		p.Location = in.Location
	}
	if in.Bio != "" {
		p.Bio = in.Bio
	}
	if in.GithubUsername != "" {
		p.GithubUsername = in.GithubUsername
	}

	cp := *p
	return &cp, nil
}

func (s *fakeProfileStore) AddExperience(_ context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	p.Experience = append([]models.Experience{exp}, p.Experience...)
	cp := *p
	return &cp, nil
}

func (s *fakeProfileStore) AddEducation(_ context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	p.Education = append([]models.Education{edu}, p.Education...)
	cp := *p
	return &cp, nil
}

func (s *fakeProfileStore) RemoveExperience(_ context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	for i, e := range p.Experience {
		if e.ID == entryID {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			cp := *p
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeProfileStore) RemoveEducation(_ context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	for i, e := range p.Education {
		if e.ID == entryID {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			cp := *p
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

type fakePostStore struct {
	mu    sync.Mutex
	posts []*models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{}
}

func (s *fakePostStore) find(id primitive.ObjectID) (int, *models.Post) {
	for i, p := range s.posts {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (s *fakePostStore) Create(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	cp := *post
	s.posts = append(s.posts, &cp)
	return nil
}

func (s *fakePostStore) FindAll(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		out = append(out, *s.posts[i])
	}
	return out, nil
}

func (s *fakePostStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.find(id)
	if p == nil {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakePostStore) Delete(_ context.Context, postID, requester primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, p := s.find(postID)
	if p == nil {
		return database.ErrNotFound
	}
	if p.User != requester {
		return database.ErrForbidden
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return nil
}

func (s *fakePostStore) Like(_ context.Context, postID, requester primitive.ObjectID) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.find(postID)
	if p == nil {
		return nil, database.ErrNotFound
	}
	if p.LikedBy(requester) {
		return nil, database.ErrAlreadyLiked
	}
	p.Likes = append([]models.Like{{User: requester}}, p.Likes...)
	return append([]models.Like{}, p.Likes...), nil
}

func (s *fakePostStore) Unlike(_ context.Context, postID, requester primitive.ObjectID) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.find(postID)
	if p == nil {
		return nil, database.ErrNotFound
	}
	for i, l := range p.Likes {
		if l.User == requester {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return append([]models.Like{}, p.Likes...), nil
		}
	}
	return nil, database.ErrNotLiked
}

func (s *fakePostStore) AddComment(_ context.Context, postID primitive.ObjectID, comment models.Comment) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.find(postID)
	if p == nil {
		return nil, database.ErrNotFound
	}
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	p.Comments = append([]models.Comment{comment}, p.Comments...)
	return append([]models.Comment{}, p.Comments...), nil
}

func (s *fakePostStore) RemoveComment(_ context.Context, postID, commentID, requester primitive.ObjectID) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, p := s.find(postID)
	if p == nil {
		return nil, database.ErrNotFound
	}
	comment := p.Comment(commentID)
	if comment == nil {
		return nil, database.ErrNotFound
	}
	if comment.User != requester {
		return nil, database.ErrForbidden
	}
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			break
		}
	}
	return append([]models.Comment{}, p.Comments...), nil
}
