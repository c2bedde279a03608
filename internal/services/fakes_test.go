package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/apperr"
	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

// In-memory repository fakes. They mirror the visibility and conditional
// update semantics of the Postgres implementations closely enough for the
// service flows under test.

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*models.Profile{}}
}

func (f *fakeProfileRepo) Create(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.profiles {
		if existing.Visible && existing.Username == p.Username {
			return apperr.ErrConflict
		}
	}
	cp := *p
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	f.profiles[cp.ID] = &cp
	return nil
}

func (f *fakeProfileRepo) FindByID(_ context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok || !p.Visible {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) FindByUsername(_ context.Context, username string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.Visible && p.Username == username {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeProfileRepo) UpdateStatus(_ context.Context, id string, status models.GeneralStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return apperr.ErrNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeProfileRepo) UpdatePassword(_ context.Context, id, hash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok || !p.Visible || p.Status != models.StatusActive {
		return false, nil
	}
	p.Password = hash
	return true, nil
}

func (f *fakeProfileRepo) UpdateName(_ context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		p.Name = name
	}
	return nil
}

func (f *fakeProfileRepo) UpdateTempUsername(_ context.Context, id, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		p.TempUsername = username
	}
	return nil
}

func (f *fakeProfileRepo) CommitUsername(_ context.Context, id, tempUsername string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok || p.TempUsername != tempUsername {
		return false, nil
	}
	p.Username = tempUsername
	p.TempUsername = ""
	return true, nil
}

func (f *fakeProfileRepo) UpdatePhoto(_ context.Context, id, photoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		p.PhotoID = photoID
	}
	return nil
}

func (f *fakeProfileRepo) SoftDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		p.Visible = false
	}
	return nil
}

func (f *fakeProfileRepo) Purge(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.profiles, id)
	return nil
}

func (f *fakeProfileRepo) Filter(_ context.Context, query string, offset, limit int) ([]models.ProfileDetail, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.ProfileDetail
	q := strings.ToLower(query)
	for _, p := range f.profiles {
		if !p.Visible {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Username), q) {
			continue
		}
		matched = append(matched, models.ProfileDetail{
			ID: p.ID, Name: p.Name, Username: p.Username, Status: p.Status, CreatedAt: p.CreatedAt,
		})
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

type fakeRoleRepo struct {
	mu    sync.Mutex
	roles map[string][]models.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string][]models.Role{}}
}

func (f *fakeRoleRepo) Create(_ context.Context, profileID string, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles[profileID] {
		if r == role {
			return nil
		}
	}
	f.roles[profileID] = append(f.roles[profileID], role)
	return nil
}

func (f *fakeRoleRepo) Roles(_ context.Context, profileID string) ([]models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Role(nil), f.roles[profileID]...), nil
}

func (f *fakeRoleRepo) DeleteAll(_ context.Context, profileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.roles, profileID)
	return nil
}

type fakeConfirmationRepo struct {
	mu    sync.Mutex
	codes []*models.ConfirmationCode
}

func newFakeConfirmationRepo() *fakeConfirmationRepo {
	return &fakeConfirmationRepo{}
}

func (f *fakeConfirmationRepo) Insert(_ context.Context, address, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.codes {
		if c.Address == address {
			c.Used = true
		}
	}
	f.codes = append(f.codes, &models.ConfirmationCode{
		ID: uuid.NewString(), Address: address, Code: code, CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (f *fakeConfirmationRepo) Latest(_ context.Context, address string) (*models.ConfirmationCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.codes) - 1; i >= 0; i-- {
		if f.codes[i].Address == address && !f.codes[i].Used {
			cp := *f.codes[i]
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeConfirmationRepo) Consume(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.codes {
		if c.ID == id && !c.Used {
			c.Used = true
			return true, nil
		}
	}
	return false, nil
}

// latestFor exposes the pending code so tests can confirm flows end to end.
func (f *fakeConfirmationRepo) latestFor(address string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.codes) - 1; i >= 0; i-- {
		if f.codes[i].Address == address && !f.codes[i].Used {
			return f.codes[i].Code
		}
	}
	return ""
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*models.Post{}}
}

func (f *fakePostRepo) Create(_ context.Context, p *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.posts[cp.ID] = &cp
	return nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok || !p.Visible {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) FindByProfile(_ context.Context, profileID string, offset, limit int) ([]models.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.Post
	for _, p := range f.posts {
		if p.Visible && p.ProfileID == profileID {
			matched = append(matched, *p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakePostRepo) OwnerID(_ context.Context, postID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[postID]
	if !ok || !p.Visible {
		return "", apperr.ErrNotFound
	}
	return p.ProfileID, nil
}

func (f *fakePostRepo) Update(_ context.Context, p *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.posts[p.ID]
	if !ok || !existing.Visible {
		return apperr.ErrNotFound
	}
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakePostRepo) SoftDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.posts[id]; ok {
		p.Visible = false
	}
	return nil
}

func (f *fakePostRepo) Filter(_ context.Context, query, exceptID string, offset, limit int) ([]models.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := strings.ToLower(query)
	var matched []models.Post
	for _, p := range f.posts {
		if !p.Visible || p.ID == exceptID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) {
			continue
		}
		matched = append(matched, *p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakePostRepo) AdminFilter(_ context.Context, _, _ string, _, _ int) ([]models.PostDetail, int64, error) {
	return nil, 0, nil
}

func (f *fakePostRepo) Similar(_ context.Context, exceptID string, limit int) ([]models.Post, error) {
	posts, _, err := f.Filter(context.Background(), "", exceptID, 0, limit)
	return posts, err
}

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[string]*models.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[string]*models.Video{}}
}

func (f *fakeVideoRepo) Create(_ context.Context, v *models.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *v
	f.videos[cp.ID] = &cp
	return nil
}

func (f *fakeVideoRepo) FindByID(_ context.Context, id string) (*models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) UpdateMeta(_ context.Context, v *models.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.videos[v.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	existing.Title = v.Title
	existing.Caption = v.Caption
	existing.Location = v.Location
	existing.Category = v.Category
	existing.Tags = v.Tags
	existing.Status = v.Status
	return nil
}

func (f *fakeVideoRepo) All(_ context.Context) ([]models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Video
	for _, v := range f.videos {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (f *fakeVideoRepo) ByStatus(_ context.Context, status models.VideoStatus) ([]models.Video, error) {
	all, _ := f.All(context.Background())
	var out []models.Video
	for _, v := range all {
		if v.Status == status {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideoRepo) IncrementViews(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return apperr.ErrNotFound
	}
	v.Views++
	return nil
}

func (f *fakeVideoRepo) AddLike(_ context.Context, id string, delta int64) (*models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	v.Likes += delta
	if v.Likes < 0 {
		v.Likes = 0
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.videos[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.videos, id)
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string]*models.Comment{}}
}

func (f *fakeCommentRepo) Create(_ context.Context, c *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.comments[cp.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id string) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) ByVideo(_ context.Context, videoID string) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for _, c := range f.comments {
		if c.VideoID == videoID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCommentRepo) Count(_ context.Context, videoID string) (int64, error) {
	list, _ := f.ByVideo(context.Background(), videoID)
	return int64(len(list)), nil
}

func (f *fakeCommentRepo) AddLike(_ context.Context, id string, delta int) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	c.Likes += delta
	if c.Likes < 0 {
		c.Likes = 0
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteByVideo(_ context.Context, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, c := range f.comments {
		if c.VideoID == videoID {
			delete(f.comments, id)
		}
	}
	return nil
}

type fakeAttachRepo struct {
	mu       sync.Mutex
	attaches map[string]*models.Attach
}

func newFakeAttachRepo() *fakeAttachRepo {
	return &fakeAttachRepo{attaches: map[string]*models.Attach{}}
}

func (f *fakeAttachRepo) Create(_ context.Context, a *models.Attach) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	f.attaches[cp.ID] = &cp
	return nil
}

func (f *fakeAttachRepo) FindByID(_ context.Context, id string) (*models.Attach, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attaches[id]
	if !ok || !a.Visible {
		return nil, apperr.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttachRepo) SoftDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.attaches[id]; ok {
		a.Visible = false
	}
	return nil
}
