package llm

import (
	"fmt"
	"strings"
)

// AnalysisSystemPrompt pins the output contract for analysis calls.
const AnalysisSystemPrompt = "You are an expert career coach and professional resume writer. Respond with JSON only. No markdown. Never omit keys. Output must match the schema exactly."

// CoverLetterSystemPrompt frames cover letter generation.
const CoverLetterSystemPrompt = "You are an expert career coach and professional writer."

// BuildAnalysisPrompt creates the instruction payload for a resume/job
// matching request. Pure; callers validate inputs.
func BuildAnalysisPrompt(resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString("Meticulously analyze the provided resume against the job description and generate a comprehensive analysis and an improved, tailored resume.\n\n")
	b.WriteString("Resume:\n```\n")
	b.WriteString(resumeText)
	b.WriteString("\n```\n\nJob Description:\n```\n")
	b.WriteString(jobDescription)
	b.WriteString("\n```\n\n")
	b.WriteString("Instructions:\n")
	b.WriteString("1. Calculate a match score from 0 to 100 based on the alignment of skills, experience, and keywords.\n")
	b.WriteString("2. Identify the top 5-7 most critical keywords/skills from the job description. Categorize them into matched (present in the resume) and missing (absent from the resume).\n")
	b.WriteString("3. Rewrite the entire resume, professionally tailored for this job description. Seamlessly integrate the missing keywords, rephrase bullet points with action verbs, and quantify achievements where possible. The tone should be professional and confident.\n")
	b.WriteString("4. Extract the core job title from the description.\n\n")
	b.WriteString("Return ONLY a single valid JSON object with the fields matchScore (number), matchedKeywords (array of strings), missingKeywords (array of strings), tailoredResumeText (string), jobTitle (string). Do not include markdown formatting or any text outside the JSON object.")
	return b.String()
}

// BuildCoverLetterPrompt creates the instruction payload for cover letter
// generation given a tailored resume and optional user notes. Pure.
func BuildCoverLetterPrompt(tailoredResume, jobDescription, notes string) string {
	if strings.TrimSpace(notes) == "" {
		notes = "No specific notes provided."
	}
	var b strings.Builder
	b.WriteString("Write a compelling and professional cover letter that complements the candidate's tailored resume and strongly positions them for an interview.\n\n")
	fmt.Fprintf(&b, "Tailored Resume:\n```\n%s\n```\n\n", tailoredResume)
	fmt.Fprintf(&b, "Target Job Description:\n```\n%s\n```\n\n", jobDescription)
	fmt.Fprintf(&b, "Personal Notes (optional points to include):\n```\n%s\n```\n\n", notes)
	b.WriteString("Instructions:\n")
	b.WriteString("1. Open strong: grab attention and state the position being applied for.\n")
	b.WriteString("2. In 2-3 body paragraphs, connect the candidate's key skills and achievements to the most critical requirements in the job description, weaving in the personal notes where they fit. Keep the tone confident, professional, and enthusiastic.\n")
	b.WriteString("3. Close by reiterating interest, expressing eagerness for an interview, and including a call to action.\n")
	b.WriteString("4. Output the cover letter text only: no subject line, no address headers, no commentary.")
	return b.String()
}
