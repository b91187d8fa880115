package session

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/content-hub/content-hub/internal/extract"
	"github.com/content-hub/content-hub/internal/model"
	"github.com/content-hub/content-hub/internal/prompt"
	"github.com/content-hub/content-hub/internal/render"
)

// ErrNotConfigured reports a missing similarity store or chat backend. The
// action fails before any retrieval or generation work starts.
var ErrNotConfigured = eris.New("session: generation service is not configured")

// ErrNoOutput reports a refine or output request on a session that has
// nothing generated yet.
var ErrNoOutput = eris.New("session: no generated output")

// Upload is one user-supplied reference file.
type Upload struct {
	Name string
	Data []byte
}

// Resolver produces the reference context for a topic.
type Resolver interface {
	Resolve(ctx context.Context, topic string, uploadTexts []string, urls []string) model.ReferenceContext
}

// Generator produces and refines content.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Refine(ctx context.Context, previous, instruction string) (string, error)
}

// Service runs the content pipeline against a session. storeReady records
// whether the similarity store is configured; generation and refinement both
// require it, even when a lower retrieval tier could have answered.
type Service struct {
	extractor  *extract.Extractor
	resolver   Resolver
	generator  Generator
	storeReady bool
}

func NewService(extractor *extract.Extractor, resolver Resolver, generator Generator, storeReady bool) *Service {
	return &Service{extractor: extractor, resolver: resolver, generator: generator, storeReady: storeReady}
}

// checkConfigured gates an action on the store and chat backend being
// configured.
func (s *Service) checkConfigured() error {
	if !s.storeReady {
		return eris.Wrap(ErrNotConfigured, "similarity store is required")
	}
	if s.generator == nil {
		return eris.Wrap(ErrNotConfigured, "chat provider is required")
	}
	return nil
}

// Generate validates the request, resolves reference content, builds the
// prompt, and calls the model. On success the session's result is replaced;
// on any failure it is left untouched.
func (s *Service) Generate(ctx context.Context, sess *Session, req model.GenerationRequest, uploads []Upload, urls []string) (*model.GenerationResult, error) {
	sess.actionMu.Lock()
	defer sess.actionMu.Unlock()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkConfigured(); err != nil {
		return nil, err
	}

	req.Topic = strings.TrimSpace(req.Topic)

	texts := s.extractUploads(ctx, uploads)
	ref := model.ReferenceContext{Source: model.TierNone}
	if s.resolver != nil {
		ref = s.resolver.Resolve(ctx, req.Topic, texts, urls)
	}

	var p string
	switch req.ContentType {
	case model.ContentBlog:
		p = prompt.Blog(req, ref)
	case model.ContentVideoScript:
		p = prompt.Video(req, ref)
	}

	out, err := s.generator.Generate(ctx, p)
	if err != nil {
		return nil, eris.Wrap(err, "session: generate")
	}

	result := &model.GenerationResult{
		Text:      render.StripFences(out),
		Request:   req,
		Source:    ref.Source,
		CreatedAt: time.Now().UTC(),
	}
	sess.SetResult(result)

	zap.L().Info("content generated",
		zap.String("session_id", sess.ID),
		zap.String("content_type", string(req.ContentType)),
		zap.String("source", ref.Source.String()),
	)
	return result, nil
}

// Refine rewrites the session's current output per the instruction. It
// requires existing output and a non-empty instruction.
func (s *Service) Refine(ctx context.Context, sess *Session, instruction string) (*model.GenerationResult, error) {
	sess.actionMu.Lock()
	defer sess.actionMu.Unlock()

	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, eris.Wrap(model.ErrInvalidRequest, "refine instruction is required")
	}
	current := sess.Current()
	if current == nil {
		return nil, ErrNoOutput
	}
	if err := s.checkConfigured(); err != nil {
		return nil, err
	}

	out, err := s.generator.Refine(ctx, current.Text, instruction)
	if err != nil {
		return nil, eris.Wrap(err, "session: refine")
	}

	result := &model.GenerationResult{
		Text:      render.StripFences(out),
		Request:   current.Request,
		Source:    current.Source,
		CreatedAt: time.Now().UTC(),
	}
	sess.SetResult(result)
	return result, nil
}

// extractUploads pulls text from each upload. Extraction failures are
// recovered per file; partial text still counts.
func (s *Service) extractUploads(ctx context.Context, uploads []Upload) []string {
	if s.extractor == nil || len(uploads) == 0 {
		return nil
	}
	texts := make([]string, 0, len(uploads))
	for _, u := range uploads {
		res := s.extractor.Extract(ctx, u.Name, u.Data)
		if res.Err != nil {
			zap.L().Warn("upload extraction failed, continuing",
				zap.String("file", u.Name), zap.Error(res.Err))
		}
		if res.Text != "" {
			texts = append(texts, res.Text)
		}
	}
	return texts
}
