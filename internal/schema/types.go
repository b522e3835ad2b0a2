package schema

// DefaultWordCount is the word count slider's starting position.
const DefaultWordCount = 500

func input(id, label, placeholder string, required bool) FieldDescriptor {
	return FieldDescriptor{ID: id, Label: label, Kind: KindSingleLine, Placeholder: placeholder, Required: required}
}

func textarea(id, label, placeholder string, required bool) FieldDescriptor {
	return FieldDescriptor{ID: id, Label: label, Kind: KindMultiLine, Placeholder: placeholder, Required: required}
}

var registry = map[string]ContentType{
	"essay": {
		Tag: "essay", Label: "Essay", DefaultWordCount: DefaultWordCount,
		Fields: []FieldDescriptor{
			input("topic", "Topic", "What should the essay be about?", true),
			textarea("additionalRequirements", "Additional Requirements", "Any specific points, sources or structure to include", false),
		},
	},
	"assignment": {
		Tag: "assignment", Label: "Assignment", DefaultWordCount: DefaultWordCount,
		Fields: []FieldDescriptor{
			input("subject", "Subject", "Subject or course name", false),
			textarea("questions", "Questions", "Assignment questions, one per line", true),
		},
	},
	"summary": {
		Tag: "summary", Label: "Summary", DefaultWordCount: 300,
		Fields: []FieldDescriptor{
			textarea("text", "Text to Summarize", "Paste the text you want summarized", true),
			input("sourceType", "Source Type", "text, article, book chapter, etc.", false),
		},
	},
	"thesis": {
		Tag: "thesis", Label: "Thesis", DefaultWordCount: DefaultWordCount,
		Fields: []FieldDescriptor{
			input("researchArea", "Research Area", "Enter your research area or field of study", true),
			textarea("researchQuestion", "Research Question", "What is your main research question or hypothesis?", true),
			textarea("methodology", "Methodology", "Describe your research methodology or approach", false),
			textarea("objectives", "Key Objectives", "List your main research objectives", false),
		},
	},
	"speech": {
		Tag: "speech", Label: "Speech", DefaultWordCount: DefaultWordCount,
		Fields: []FieldDescriptor{
			input("occasion", "Occasion/Event", "What is the occasion or event?", true),
			input("audience", "Target Audience", "Who is your audience?", true),
			textarea("mainMessage", "Main Message", "What is the key message you want to convey?", true),
			textarea("keyPoints", "Key Points", "List the main points you want to cover", false),
		},
	},
	"notice": {
		Tag: "notice", Label: "Notice", DefaultWordCount: DefaultWordCount,
		Fields: []FieldDescriptor{
			input("organization", "Organization/Institution", "Name of the organization or institution", true),
			input("purpose", "Purpose of Notice", "What is this notice about?", true),
			textarea("details", "Details", "Provide detailed information about the notice", true),
			input("deadline", "Important Dates/Deadlines", "Any important dates or deadlines", false),
		},
	},
	"report": {
		Tag: "report", Label: "Report", DefaultWordCount: DefaultWordCount,
		Fields: []FieldDescriptor{
			input("reportType", "Report Type", "What type of report is this?", true),
			textarea("objective", "Objective", "What is the main objective of this report?", true),
			textarea("scope", "Scope", "Define the scope and boundaries of the report", false),
			textarea("keyFindings", "Key Findings/Data", "Provide key findings, data, or observations", false),
		},
	},
	"letter": {
		Tag: "letter", Label: "Letter", DefaultWordCount: DefaultWordCount,
		Fields: []FieldDescriptor{
			input("letterType", "Letter Type", "Business, Personal, Complaint, etc.", true),
			input("recipient", "Recipient", "Who is this letter addressed to?", true),
			textarea("purpose", "Purpose", "What is the main purpose of this letter?", true),
			textarea("keyPoints", "Key Points", "List the main points you want to address", false),
		},
	},
	"application": {
		Tag: "application", Label: "Application", DefaultWordCount: DefaultWordCount,
		Fields: []FieldDescriptor{
			input("applicationType", "Application Type", "Job application, school admission, etc.", true),
			input("position", "Position/Program", "What position or program are you applying for?", true),
			textarea("qualifications", "Key Qualifications", "List your relevant qualifications and experience", true),
			textarea("motivation", "Motivation/Interest", "Why are you interested in this position/program?", false),
		},
	},
	"caption": {
		Tag: "caption", Label: "Caption", DefaultWordCount: DefaultWordCount,
		Fields: []FieldDescriptor{
			input("platform", "Social Platform", "Instagram, Facebook, Twitter, etc.", true),
			input("contentType", "Content Type", "Photo, video, story, etc.", true),
			textarea("description", "Content Description", "Describe what your post is about", true),
			input("hashtags", "Target Keywords/Themes", "Keywords or themes for hashtag suggestions", false),
		},
	},
	"diary": {
		Tag: "diary", Label: "Diary", DefaultWordCount: DefaultWordCount,
		Fields: []FieldDescriptor{
			input("date", "Date/Period", "Date or time period for this entry", true),
			input("mood", "Mood/Feeling", "How are you feeling today?", true),
			textarea("events", "Key Events", "What happened today that you want to remember?", true),
			textarea("reflection", "Thoughts/Reflection", "Any thoughts, insights, or reflections?", false),
		},
	},
	"script": {
		Tag: "script", Label: "Script", DefaultWordCount: DefaultWordCount,
		Fields: []FieldDescriptor{
			input("eventType", "Event Type", "Wedding, conference, presentation, etc.", true),
			input("duration", "Expected Duration", "How long should the event be?", true),
			input("audience", "Target Audience", "Who will be attending?", true),
			textarea("keyElements", "Key Elements/Segments", "What are the main segments or elements of the event?", false),
		},
	},
}
