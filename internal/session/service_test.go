package session

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/content-hub/content-hub/internal/model"
)

type stubResolver struct {
	ref      model.ReferenceContext
	calls    int
	gotTexts []string
	gotURLs  []string
}

func (s *stubResolver) Resolve(_ context.Context, _ string, texts, urls []string) model.ReferenceContext {
	s.calls++
	s.gotTexts = texts
	s.gotURLs = urls
	return s.ref
}

type stubGenerator struct {
	generated      string
	refined        string
	err            error
	gotPrompt      string
	gotInstruction string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.gotPrompt = prompt
	return s.generated, s.err
}

func (s *stubGenerator) Refine(_ context.Context, _, instruction string) (string, error) {
	s.gotInstruction = instruction
	return s.refined, s.err
}

func blogRequest() model.GenerationRequest {
	return model.GenerationRequest{
		ContentType: model.ContentBlog,
		Topic:       "Clean core strategies",
		Tone:        model.ToneProfessional,
		Audience:    model.AudienceSenior,
		WordLimit:   800,
		CTA:         "Contact us today",
		SEO:         &model.SEO{PrimaryKeyword: "clean core"},
	}
}

func TestService_Generate(t *testing.T) {
	resolver := &stubResolver{ref: model.ReferenceContext{Text: "ref text", Source: model.TierUploads}}
	gen := &stubGenerator{generated: "```markdown\n# Blog\n\nBody.\n```"}
	svc := NewService(nil, resolver, gen, true)
	sess := NewStore().Create()

	res, err := svc.Generate(context.Background(), sess, blogRequest(), nil, []string{"https://a.example"})
	require.NoError(t, err)
	assert.Equal(t, "# Blog\n\nBody.", res.Text)
	assert.Equal(t, model.TierUploads, res.Source)
	assert.Equal(t, []string{"https://a.example"}, resolver.gotURLs)
	assert.Contains(t, gen.gotPrompt, "ref text")
	assert.Same(t, res, sess.Current())
}

func TestService_Generate_InvalidRequest(t *testing.T) {
	gen := &stubGenerator{generated: "out"}
	svc := NewService(nil, &stubResolver{}, gen, true)
	sess := NewStore().Create()

	req := blogRequest()
	req.SEO = nil
	_, err := svc.Generate(context.Background(), sess, req, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
	assert.Nil(t, sess.Current())
	assert.Empty(t, gen.gotPrompt)
}

func TestService_Generate_NotConfigured(t *testing.T) {
	svc := NewService(nil, &stubResolver{}, nil, true)
	sess := NewStore().Create()

	_, err := svc.Generate(context.Background(), sess, blogRequest(), nil, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestService_Generate_StoreNotConfigured(t *testing.T) {
	resolver := &stubResolver{}
	gen := &stubGenerator{generated: "out"}
	svc := NewService(nil, resolver, gen, false)
	sess := NewStore().Create()

	_, err := svc.Generate(context.Background(), sess, blogRequest(), nil, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Zero(t, resolver.calls)
	assert.Empty(t, gen.gotPrompt)
	assert.Nil(t, sess.Current())
}

func TestService_Refine_StoreNotConfigured(t *testing.T) {
	gen := &stubGenerator{refined: "improved"}
	svc := NewService(nil, &stubResolver{}, gen, false)
	sess := NewStore().Create()
	sess.SetResult(&model.GenerationResult{Text: "existing"})

	_, err := svc.Refine(context.Background(), sess, "shorter")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, gen.gotInstruction)
	assert.Equal(t, "existing", sess.Current().Text)
}

func TestService_Generate_FailureLeavesOutputUntouched(t *testing.T) {
	gen := &stubGenerator{generated: "first draft"}
	svc := NewService(nil, &stubResolver{}, gen, true)
	sess := NewStore().Create()

	_, err := svc.Generate(context.Background(), sess, blogRequest(), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, sess.Current())

	gen.err = eris.New("upstream timeout")
	_, err = svc.Generate(context.Background(), sess, blogRequest(), nil, nil)
	require.Error(t, err)
	assert.Equal(t, "first draft", sess.Current().Text)
}

func TestService_Generate_VideoPrompt(t *testing.T) {
	gen := &stubGenerator{generated: "script"}
	svc := NewService(nil, &stubResolver{}, gen, true)
	sess := NewStore().Create()

	req := model.GenerationRequest{
		ContentType:     model.ContentVideoScript,
		Topic:           "AI copilots",
		Tone:            model.ToneStorytelling,
		Audience:        model.AudienceMiddle,
		DurationMinutes: 1.5,
		CTA:             "Request a demo",
	}
	_, err := svc.Generate(context.Background(), sess, req, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, gen.gotPrompt, "~6 scenes")
}

func TestService_Refine(t *testing.T) {
	gen := &stubGenerator{generated: "original", refined: "improved"}
	svc := NewService(nil, &stubResolver{ref: model.ReferenceContext{Source: model.TierWebSearch, Text: "x"}}, gen, true)
	sess := NewStore().Create()

	_, err := svc.Generate(context.Background(), sess, blogRequest(), nil, nil)
	require.NoError(t, err)

	res, err := svc.Refine(context.Background(), sess, "  make it punchier  ")
	require.NoError(t, err)
	assert.Equal(t, "improved", res.Text)
	assert.Equal(t, "make it punchier", gen.gotInstruction)
	assert.Equal(t, model.TierWebSearch, res.Source)
}

func TestService_Refine_RequiresOutput(t *testing.T) {
	svc := NewService(nil, &stubResolver{}, &stubGenerator{}, true)
	sess := NewStore().Create()

	_, err := svc.Refine(context.Background(), sess, "shorter")
	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestService_Refine_EmptyInstruction(t *testing.T) {
	svc := NewService(nil, &stubResolver{}, &stubGenerator{}, true)
	sess := NewStore().Create()
	sess.SetResult(&model.GenerationResult{Text: "existing"})

	_, err := svc.Refine(context.Background(), sess, "   ")
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
	assert.Equal(t, "existing", sess.Current().Text)
}

func TestService_Refine_FailureLeavesOutputUntouched(t *testing.T) {
	gen := &stubGenerator{err: eris.New("rate limited")}
	svc := NewService(nil, &stubResolver{}, gen, true)
	sess := NewStore().Create()
	sess.SetResult(&model.GenerationResult{Text: "existing"})

	_, err := svc.Refine(context.Background(), sess, "shorter")
	require.Error(t, err)
	assert.Equal(t, "existing", sess.Current().Text)
}

func TestStore(t *testing.T) {
	store := NewStore()
	sess := store.Create()
	assert.NotEmpty(t, sess.ID)

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)

	store.Delete(sess.ID)
	_, ok = store.Get(sess.ID)
	assert.False(t, ok)
}

func TestSession_Clear(t *testing.T) {
	sess := NewStore().Create()
	sess.SetResult(&model.GenerationResult{Text: "something"})
	sess.Clear()
	assert.Nil(t, sess.Current())
}
