package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBlog() GenerationRequest {
	return GenerationRequest{
		ContentType: ContentBlog,
		Topic:       "Clean core strategies",
		Tone:        ToneProfessional,
		Audience:    AudienceSenior,
		WordLimit:   1000,
		CTA:         "Talk to our experts",
		SEO:         &SEO{PrimaryKeyword: "clean core"},
	}
}

func validVideo() GenerationRequest {
	return GenerationRequest{
		ContentType:     ContentVideoScript,
		Topic:           "Warehouse automation",
		Tone:            ToneStorytelling,
		Audience:        AudienceMiddle,
		DurationMinutes: 1.5,
		CTA:             "Request a demo",
	}
}

func TestValidateBlog(t *testing.T) {
	assert.NoError(t, validBlog().Validate())
}

func TestValidateBlogRequiresPrimaryKeyword(t *testing.T) {
	req := validBlog()
	req.SEO = &SEO{PrimaryKeyword: "   "}
	err := req.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "primary keyword")

	req.SEO = nil
	assert.Error(t, req.Validate())
}

func TestValidateVideo(t *testing.T) {
	assert.NoError(t, validVideo().Validate())
}

func TestValidateVideoRejectsSEO(t *testing.T) {
	req := validVideo()
	req.SEO = &SEO{PrimaryKeyword: "automation"}
	err := req.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestValidateVideoRequiresDuration(t *testing.T) {
	req := validVideo()
	req.DurationMinutes = 0
	assert.Error(t, req.Validate())
}

func TestValidateTopicRequired(t *testing.T) {
	req := validBlog()
	req.Topic = "  "
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic")
}

func TestValidateContentType(t *testing.T) {
	req := validBlog()
	req.ContentType = "newsletter"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown content type")
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "uploads", TierUploads.String())
	assert.Equal(t, "urls", TierURLs.String())
	assert.Equal(t, "similarity", TierSimilarity.String())
	assert.Equal(t, "websearch", TierWebSearch.String())
	assert.Equal(t, "none", TierNone.String())
}

func TestReferenceContextEmpty(t *testing.T) {
	assert.True(t, ReferenceContext{}.Empty())
	assert.False(t, ReferenceContext{Text: "alpha", Source: TierUploads}.Empty())
}
