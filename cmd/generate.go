package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/content-hub/content-hub/internal/model"
	"github.com/content-hub/content-hub/internal/session"
)

var generateFlags struct {
	contentType     string
	topic           string
	tone            string
	audience        string
	industry        string
	wordLimit       int
	durationMinutes float64
	cta             string
	primaryKeyword  string
	lsiKeywords     []string
	files           []string
	urls            []string
	out             string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a blog or video script from the command line",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("generate"); err != nil {
			return err
		}

		req := model.GenerationRequest{
			ContentType:     model.ContentType(generateFlags.contentType),
			Topic:           generateFlags.topic,
			Tone:            model.Tone(generateFlags.tone),
			Audience:        model.Audience(generateFlags.audience),
			Industry:        generateFlags.industry,
			WordLimit:       generateFlags.wordLimit,
			DurationMinutes: generateFlags.durationMinutes,
			CTA:             generateFlags.cta,
		}
		if generateFlags.primaryKeyword != "" || len(generateFlags.lsiKeywords) > 0 {
			req.SEO = &model.SEO{
				PrimaryKeyword: generateFlags.primaryKeyword,
				LSIKeywords:    generateFlags.lsiKeywords,
			}
		}

		uploads, err := readUploads(generateFlags.files)
		if err != nil {
			return err
		}

		svcs, err := buildServices(ctx, cfg)
		if err != nil {
			return err
		}
		defer svcs.Close()

		sess := session.NewStore().Create()
		result, err := svcs.Service.Generate(ctx, sess, req, uploads, generateFlags.urls)
		if err != nil {
			return err
		}

		zap.L().Info("generation complete", zap.String("source", result.Source.String()))

		if generateFlags.out != "" {
			if err := os.WriteFile(generateFlags.out, []byte(result.Text), 0o644); err != nil {
				return eris.Wrapf(err, "write %s", generateFlags.out)
			}
			return nil
		}
		fmt.Println(result.Text)
		return nil
	},
}

func readUploads(paths []string) ([]session.Upload, error) {
	var uploads []session.Upload
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "read %s", path)
		}
		uploads = append(uploads, session.Upload{Name: path, Data: data})
	}
	return uploads, nil
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.contentType, "type", "blog", "content type: blog or video_script")
	f.StringVar(&generateFlags.topic, "topic", "", "topic to write about (required)")
	f.StringVar(&generateFlags.tone, "tone", "professional", "writing tone")
	f.StringVar(&generateFlags.audience, "audience", "senior_management", "target audience")
	f.StringVar(&generateFlags.industry, "industry", "", "industry context")
	f.IntVar(&generateFlags.wordLimit, "word-limit", 1000, "blog word limit")
	f.Float64Var(&generateFlags.durationMinutes, "duration", 1, "video duration in minutes")
	f.StringVar(&generateFlags.cta, "cta", "Contact us today", "call-to-action")
	f.StringVar(&generateFlags.primaryKeyword, "primary-keyword", "", "SEO primary keyword (blog)")
	f.StringSliceVar(&generateFlags.lsiKeywords, "lsi-keyword", nil, "SEO LSI keyword (repeatable)")
	f.StringSliceVar(&generateFlags.files, "file", nil, "reference file (repeatable)")
	f.StringSliceVar(&generateFlags.urls, "url", nil, "reference URL (repeatable)")
	f.StringVar(&generateFlags.out, "out", "", "write markdown to file instead of stdout")
	generateCmd.MarkFlagRequired("topic")
	rootCmd.AddCommand(generateCmd)
}
