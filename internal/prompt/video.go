package prompt

import (
	"fmt"

	"github.com/content-hub/content-hub/internal/model"
)

const noReferenceMaterial = "[No reference material provided]"

const videoTemplate = `
You are a professional **B2B video scriptwriter** who creates powerful marketing narratives.
Write a **timestamp-based video script** for the topic: "%s" in the %s industry.

=====================================================
STRUCTURE
=====================================================
Each scene must include:
- **Timestamp** (e.g. 0:00–0:%02d)
- **Scene name**
- **Visuals:** On-screen visuals or camera direction
- **Narration:** Voiceover content

Start each section in a new line.

=====================================================
TOTAL DURATION & SCENES
=====================================================
- Total video duration: ~%g minute(s)
- Divide into ~%d scenes (~%d seconds each)
- End with a personalized Call-to-Action

=====================================================
STORYLINE FLOW
=====================================================
1. **Problem Introduction** – hook the viewer immediately (Scene 1)
2. **Product or Brand Introduction** – what you offer and why it matters
3. **Key Feature Highlights** – focus on impact, not just specs
4. **Benefits** – how it solves real challenges
5. **Real-Life Example or Case Study** – add credibility
6. **Call-to-Action & Closing** – must sound human, confident, and aligned with "%s"

=====================================================
LANGUAGE & STYLE
=====================================================
- Tone: %s
- Target Audience: %s
- Do not add ` + "```markdown" + ` at start and ` + "```" + ` at the end of response.
- Avoid generic phrasing like "in today's fast-paced world" or "businesses need to adapt."
- Use **specific**, **action-oriented**, and **emotive** language.
- Maintain storytelling rhythm: short lines that sound natural as voiceover.
- Keep the flow: Hook → Insight → Value → CTA.
- Visual and narration headings should be in bold.
- Start visuals and narration on a new line.
- Generate output in markdown format.

=====================================================
CONTEXT & REFERENCE
=====================================================
Industry: %s
Topic: "%s"
Reference Content:
%s

=====================================================
OUTPUT FORMAT (Example)
=====================================================
Return only the **final timestamped script** like this:

0:00–0:%02d → [Scene 1: Problem introduction narration and visuals]
0:%02d–0:%02d → [Scene 2: Brand introduction narration and visuals]
`

// Scenes returns the scene count and per-scene duration in seconds for a
// video of the given length in minutes. Roughly fifteen seconds per scene,
// never fewer than four scenes.
func Scenes(durationMinutes float64) (scenes, sceneSeconds int) {
	scenes = max(4, int(durationMinutes*4))
	sceneSeconds = int(durationMinutes * 60 / float64(scenes))
	return scenes, sceneSeconds
}

// Video renders the video-script system prompt for a validated request.
func Video(req model.GenerationRequest, ref model.ReferenceContext) string {
	scenes, sceneSeconds := Scenes(req.DurationMinutes)

	industry := req.Industry
	if industry == "" {
		industry = "enterprise"
	}
	contextIndustry := req.Industry
	if contextIndustry == "" {
		contextIndustry = "Not specified"
	}

	reference := ref.Text
	if reference == "" {
		reference = noReferenceMaterial
	}

	return fmt.Sprintf(videoTemplate,
		req.Topic,
		industry,
		sceneSeconds,
		req.DurationMinutes,
		scenes,
		sceneSeconds,
		CTAText(req.CTA),
		toneGuideline(req.Tone),
		audienceGuideline(req.Audience),
		contextIndustry,
		req.Topic,
		reference,
		sceneSeconds,
		sceneSeconds,
		sceneSeconds*2,
	)
}
