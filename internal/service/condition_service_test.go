package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperdeck/internal/model"
)

// fakeQuestionRepo keeps questions in memory, ordered by insertion
type fakeQuestionRepo struct {
	questions []*model.Question
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *model.Question) (string, error) {
	r.questions = append(r.questions, q)
	return q.ID, nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id string) (*model.Question, error) {
	for _, q := range r.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, q *model.Question) error {
	for i, existing := range r.questions {
		if existing.ID == q.ID {
			r.questions[i] = q
		}
	}
	return nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id string) error {
	kept := r.questions[:0]
	for _, q := range r.questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	r.questions = kept
	return nil
}

func (r *fakeQuestionRepo) GetByPaperID(_ context.Context, paperID string) ([]*model.Question, error) {
	var out []*model.Question
	for _, q := range r.questions {
		if q.PaperID == paperID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) UpdateCondition(_ context.Context, id string, cond *model.Condition) error {
	for _, q := range r.questions {
		if q.ID == id {
			q.Condition = cond
		}
	}
	return nil
}

func (r *fakeQuestionRepo) DeleteByPaperID(_ context.Context, paperID string) error {
	kept := r.questions[:0]
	for _, q := range r.questions {
		if q.PaperID != paperID {
			kept = append(kept, q)
		}
	}
	r.questions = kept
	return nil
}

// fakeGraphCache records cache traffic
type fakeGraphCache struct {
	entries     map[string]*model.GraphAnalytics
	invalidated int
	sets        int
}

func newFakeGraphCache() *fakeGraphCache {
	return &fakeGraphCache{entries: make(map[string]*model.GraphAnalytics)}
}

func (c *fakeGraphCache) GetAnalytics(_ context.Context, paperID string) (*model.GraphAnalytics, error) {
	return c.entries[paperID], nil
}

func (c *fakeGraphCache) SetAnalytics(_ context.Context, paperID string, analytics *model.GraphAnalytics) error {
	c.entries[paperID] = analytics
	c.sets++
	return nil
}

func (c *fakeGraphCache) Invalidate(_ context.Context, paperID string) error {
	delete(c.entries, paperID)
	c.invalidated++
	return nil
}

func seedRepo() *fakeQuestionRepo {
	condB := &model.Condition{Type: model.ConditionSimple, QuestionID: "a", SelectedOption: "yes"}
	return &fakeQuestionRepo{questions: []*model.Question{
		{ID: "a", PaperID: "p1", Title: "Owns device"},
		{ID: "b", PaperID: "p1", Title: "Which brand", Condition: condB},
		{ID: "c", PaperID: "p1", Title: "Daily hours"},
	}}
}

func TestConditionServiceValidate(t *testing.T) {
	svc := NewConditionService(seedRepo(), newFakeGraphCache())

	cond := &model.Condition{Type: model.ConditionSimple, QuestionID: "a", SelectedOption: "yes"}
	verdict, err := svc.Validate(context.Background(), "p1", "c", cond)
	require.NoError(t, err)
	assert.True(t, verdict.IsValid)

	// b -> a already; a -> b closes the loop.
	cond = &model.Condition{Type: model.ConditionSimple, QuestionID: "b", SelectedOption: "yes"}
	verdict, err = svc.Validate(context.Background(), "p1", "a", cond)
	require.NoError(t, err)
	assert.False(t, verdict.IsValid)
	assert.Equal(t, []string{"a", "b", "a"}, verdict.CyclePath)
}

func TestConditionServiceValidateUnknownQuestion(t *testing.T) {
	svc := NewConditionService(seedRepo(), newFakeGraphCache())

	_, err := svc.Validate(context.Background(), "p1", "ghost", nil)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestConditionServiceDependencies(t *testing.T) {
	repo := seedRepo()
	condC := &model.Condition{Type: model.ConditionSimple, QuestionID: "b", SelectedOption: "yes"}
	repo.questions[2].Condition = condC

	svc := NewConditionService(repo, newFakeGraphCache())

	info, err := svc.Dependencies(context.Background(), "p1", "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, info.Direct)
	assert.Equal(t, []string{"a"}, info.Indirect)
	assert.Equal(t, []string{"a", "b"}, info.All)
}

func TestConditionServiceAnalyticsCaching(t *testing.T) {
	gc := newFakeGraphCache()
	svc := NewConditionService(seedRepo(), gc)

	first, err := svc.Analytics(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, first.Metrics.TotalQuestions)
	assert.Equal(t, 1, gc.sets)

	// Second read is served from the cache.
	second, err := svc.Analytics(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, gc.sets)
}

type fakePaperRepo struct {
	papers map[string]*model.Paper
}

func (r *fakePaperRepo) Create(_ context.Context, p *model.Paper) (string, error) {
	r.papers[p.ID] = p
	return p.ID, nil
}

func (r *fakePaperRepo) GetByID(_ context.Context, id string) (*model.Paper, error) {
	return r.papers[id], nil
}

func (r *fakePaperRepo) GetByAuthorID(_ context.Context, authorID string) ([]*model.Paper, error) {
	var out []*model.Paper
	for _, p := range r.papers {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaperRepo) Update(_ context.Context, p *model.Paper) error {
	r.papers[p.ID] = p
	return nil
}

func (r *fakePaperRepo) Delete(_ context.Context, id string) error {
	delete(r.papers, id)
	return nil
}

type recordingBroadcaster struct {
	events []string
}

func (b *recordingBroadcaster) BroadcastToPaper(paperID, msgType string, _ interface{}) {
	b.events = append(b.events, paperID+":"+msgType)
}

func TestQuestionServiceSetCondition(t *testing.T) {
	repo := seedRepo()
	gc := newFakeGraphCache()
	conditionSvc := NewConditionService(repo, gc)
	paperRepo := &fakePaperRepo{papers: map[string]*model.Paper{
		"p1": {ID: "p1", AuthorID: "author1", Title: "Demo"},
	}}
	svc := NewQuestionService(repo, paperRepo, conditionSvc)

	broadcaster := &recordingBroadcaster{}
	svc.SetBroadcaster(broadcaster)

	cond := &model.Condition{Type: model.ConditionSimple, QuestionID: "a", SelectedOption: "yes"}
	verdict, err := svc.SetCondition(context.Background(), "author1", "p1", "c", cond)
	require.NoError(t, err)
	require.True(t, verdict.IsValid)

	stored, _ := repo.GetByID(context.Background(), "c")
	assert.Equal(t, cond, stored.Condition)
	assert.Equal(t, 1, gc.invalidated)
	assert.Equal(t, []string{"p1:graph_updated"}, broadcaster.events)
}

func TestQuestionServiceSetConditionRejectedNotPersisted(t *testing.T) {
	repo := seedRepo()
	conditionSvc := NewConditionService(repo, newFakeGraphCache())
	paperRepo := &fakePaperRepo{papers: map[string]*model.Paper{
		"p1": {ID: "p1", AuthorID: "author1", Title: "Demo"},
	}}
	svc := NewQuestionService(repo, paperRepo, conditionSvc)

	// a -> b would close the existing b -> a edge into a loop.
	cond := &model.Condition{Type: model.ConditionSimple, QuestionID: "b", SelectedOption: "yes"}
	verdict, err := svc.SetCondition(context.Background(), "author1", "p1", "a", cond)
	require.NoError(t, err)
	require.False(t, verdict.IsValid)

	stored, _ := repo.GetByID(context.Background(), "a")
	assert.Nil(t, stored.Condition)
}

func TestQuestionServiceOwnership(t *testing.T) {
	repo := seedRepo()
	conditionSvc := NewConditionService(repo, newFakeGraphCache())
	paperRepo := &fakePaperRepo{papers: map[string]*model.Paper{
		"p1": {ID: "p1", AuthorID: "author1", Title: "Demo"},
	}}
	svc := NewQuestionService(repo, paperRepo, conditionSvc)

	_, err := svc.SetCondition(context.Background(), "intruder", "p1", "c", nil)
	assert.ErrorIs(t, err, ErrNotPaperOwner)

	_, err = svc.SetCondition(context.Background(), "author1", "missing", "c", nil)
	assert.ErrorIs(t, err, ErrPaperNotFound)
}
