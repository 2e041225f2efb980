package generator

import (
	"strings"

	"content-rebirth/models"
)

const rolePreamble = "You are an expert content creator who transforms meeting transcripts into engaging, well-structured content. You understand the context and can create various types of content while maintaining the original meaning and insights."

var contentTypeDirectives = map[models.ContentType]string{
	models.ContentTypeArticle:     "Create a comprehensive article with clear sections, headings, and a logical flow. Include an introduction, main points, and conclusion.",
	models.ContentTypeBlogPost:    "Create an engaging blog post with clear headings and actionable insights. Make it shareable and easy to read.",
	models.ContentTypeSocialMedia: "Create multiple social media posts (Twitter, LinkedIn, Instagram) with engaging hooks, hashtags, and call-to-actions. Keep each post concise and impactful.",
	models.ContentTypeNewsletter:  "Create a newsletter format with a compelling subject line, introduction, key highlights, and a call-to-action. Make it scannable and informative.",
	models.ContentTypeWhitepaper:  "Create a professional whitepaper with executive summary, detailed analysis, data insights, and recommendations. Use formal language and structure.",
	models.ContentTypeCaseStudy:   "Create a case study with problem statement, solution approach, implementation details, results, and key learnings. Include metrics and outcomes.",
}

var toneDirectives = map[Tone]string{
	ToneProfessional:   "Use formal, business-appropriate language with industry terminology. Maintain a professional and authoritative tone.",
	ToneCasual:         "Use conversational, friendly language. Write as if speaking to a colleague. Include relatable examples and informal expressions.",
	ToneAcademic:       "Use scholarly language with proper citations and references. Maintain an analytical and research-based approach.",
	ToneConversational: "Use natural, flowing language that feels like a friendly conversation. Include questions and engaging elements.",
}

var lengthDirectives = map[Length]string{
	LengthShort:  "Keep the content concise and focused. Aim for 300-500 words.",
	LengthMedium: "Create comprehensive content with good detail. Aim for 800-1200 words.",
	LengthLong:   "Create detailed, in-depth content with extensive coverage. Aim for 1500-2500 words.",
}

var lengthTokenBudgets = map[Length]int{
	LengthShort:  1000,
	LengthMedium: 2000,
	LengthLong:   4000,
}

const outputShapeInstruction = `Please generate the content in the following JSON format:
{
  "title": "Engaging title for the content",
  "content": "The main content body",
  "summary": "A brief summary of the key points",
  "keyTakeaways": ["takeaway1", "takeaway2", "takeaway3"],
  "seoData": {
    "metaTitle": "SEO-optimized title (50-60 characters)",
    "metaDescription": "SEO-optimized description (150-160 characters)",
    "keywords": ["keyword1", "keyword2", "keyword3"]
  },
  "tags": ["tag1", "tag2", "tag3"],
  "category": "content category"
}

Focus on:
- Extracting key insights and actionable points
- Maintaining the original context and meaning
- Creating engaging, readable content
- Optimizing for the specified content type and tone
- Including relevant keywords naturally`

// BuildPrompt assembles the provider instruction for req. It is pure: the
// same request always produces the same prompt. Empty enum fields take the
// WithDefaults values.
func BuildPrompt(req GenerationRequest) string {
	req = req.WithDefaults()

	var b strings.Builder
	b.WriteString(rolePreamble)
	b.WriteString("\n\n")
	b.WriteString("Please transform the following meeting transcript into ")
	b.WriteString(contentTypeLabel(req.ContentType))
	b.WriteString(" content.\n\n")

	writeSection(&b, contentTypeDirectives[req.ContentType])
	writeSection(&b, toneDirectives[req.Tone])
	writeSection(&b, lengthDirectives[req.Length])

	var meta []string
	if req.Title != "" {
		meta = append(meta, "Title: "+req.Title)
	}
	if req.Category != "" {
		meta = append(meta, "Category: "+req.Category)
	}
	if len(req.Tags) > 0 {
		meta = append(meta, "Tags: "+strings.Join(req.Tags, ", "))
	}
	if len(meta) > 0 {
		writeSection(&b, strings.Join(meta, "\n"))
	}

	b.WriteString("Meeting Transcript:\n")
	b.WriteString(req.Transcript)
	b.WriteString("\n\n")
	b.WriteString(outputShapeInstruction)
	b.WriteString("\n")
	return b.String()
}

func writeSection(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	b.WriteString(s)
	b.WriteString("\n\n")
}

// contentTypeLabel renders BLOG_POST as "blog post".
func contentTypeLabel(t models.ContentType) string {
	return strings.ReplaceAll(strings.ToLower(string(t)), "_", " ")
}
