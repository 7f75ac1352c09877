package analyzer

// Kind identifies one of the fixed document-analysis tasks. The set is
// closed: each kind is bound at compile time to a system prompt, a result
// schema, and an output-token budget.
type Kind string

const (
	KindSentiment   Kind = "sentiment"
	KindEntities    Kind = "entities"
	KindKeyPoints   Kind = "key_points"
	KindStructure   Kind = "structure"
	KindActionItems Kind = "action_items"

	// KindMetadata is the generic document-metadata task: title, summary,
	// keywords, topics.
	KindMetadata Kind = "metadata"
)

// Kinds returns all analysis kinds in display order.
func Kinds() []Kind {
	return []Kind{
		KindSentiment,
		KindEntities,
		KindKeyPoints,
		KindStructure,
		KindActionItems,
		KindMetadata,
	}
}

// ParseKind resolves a kind name. The second return value reports whether
// the name is known.
func ParseKind(name string) (Kind, bool) {
	k := Kind(name)
	_, ok := kindConfigs[k]
	return k, ok
}

// Description returns a one-line description of the kind for CLI help.
func (k Kind) Description() string {
	switch k {
	case KindSentiment:
		return "Analyze sentiment and emotional tone"
	case KindEntities:
		return "Extract named entities and key concepts"
	case KindKeyPoints:
		return "Extract main points and supporting evidence"
	case KindStructure:
		return "Analyze document structure and logical flow"
	case KindActionItems:
		return "Extract action items, deadlines, and responsible parties"
	case KindMetadata:
		return "Generate title, summary, keywords, and topics"
	default:
		return ""
	}
}

// kindConfig binds a kind to its prompt, schema, and output budget.
type kindConfig struct {
	systemPrompt    string
	schema          Schema
	maxOutputTokens int
}

var kindConfigs = map[Kind]kindConfig{
	KindSentiment: {
		maxOutputTokens: specializedOutputTokens,
		schema: Schema{
			{Name: "polarity", Type: TypeNumber},
			{Name: "valence", Type: TypeString},
			{Name: "confidence", Type: TypeNumber},
			{Name: "dominant_emotions", Type: TypeStringArray},
			{Name: "analysis", Type: TypeString},
		},
		systemPrompt: `You are an expert sentiment analyzer. Given the content of a document, analyze its sentiment in detail.
Provide:
1. A polarity score between -1.0 (extremely negative) and 1.0 (extremely positive)
2. The sentiment valence ("negative", "neutral", or "positive")
3. A confidence score between 0.0 and 1.0 for your analysis
4. A list of dominant emotions detected in the text
5. A brief qualitative analysis of the sentiment

Return your analysis as a valid JSON object with these keys:
polarity, valence, confidence, dominant_emotions, analysis`,
	},
	KindEntities: {
		maxOutputTokens: specializedOutputTokens,
		schema: Schema{
			{Name: "entities", Type: TypeObject},
		},
		systemPrompt: `You are an expert entity extraction system. Given the content of a document, extract all named entities.
Categorize entities into types such as:
- people
- organizations
- locations
- dates
- products
- technologies
- concepts
- other relevant entity types you identify

Return your analysis as a valid JSON object with an "entities" key mapping to a dictionary
where keys are entity types and values are lists of unique entities of that type.`,
	},
	KindKeyPoints: {
		maxOutputTokens: specializedOutputTokens,
		schema: Schema{
			{Name: "main_points", Type: TypeStringArray},
			{Name: "supporting_evidence", Type: TypeObject},
		},
		systemPrompt: `You are an expert content analyst. Given the content of a document, extract the key points and supporting evidence.
Provide:
1. A list of the main points or arguments in the content
2. For each main point, a list of supporting evidence, quotes, or details from the text

Return your analysis as a valid JSON object with these keys:
main_points (a list of strings), supporting_evidence (a dictionary mapping each main point to a list of supporting evidence)`,
	},
	KindStructure: {
		maxOutputTokens: specializedOutputTokens,
		schema: Schema{
			{Name: "sections", Type: TypeArray},
			{Name: "flow_analysis", Type: TypeString},
			{Name: "suggestions", Type: TypeStringArray},
		},
		systemPrompt: `You are an expert content structure analyst. Given the content of a document, analyze its structure.
Provide:
1. A breakdown of the content's sections (with titles and key elements in each)
2. An analysis of the logical flow between sections
3. Suggestions for structural improvements

Return your analysis as a valid JSON object with these keys:
sections (a list of section objects with title and key_elements), flow_analysis (a string), suggestions (a list of strings)`,
	},
	KindActionItems: {
		maxOutputTokens: specializedOutputTokens,
		schema: Schema{
			{Name: "action_items", Type: TypeArray},
			{Name: "deadlines", Type: TypeArray},
			{Name: "responsible_parties", Type: TypeStringArray},
		},
		systemPrompt: `You are an expert at extracting action items from text. Given the content of a document, identify all action items, deadlines, and responsible parties.
Provide:
1. A list of action items (with description, priority if mentioned, and context)
2. A list of deadlines mentioned (with the associated action and date)
3. A list of responsible parties (people or teams mentioned as responsible for actions)

Return your analysis as a valid JSON object with these keys:
action_items (a list of action item objects), deadlines (a list of deadline objects), responsible_parties (a list of strings)`,
	},
	KindMetadata: {
		maxOutputTokens: metadataOutputTokens,
		schema: Schema{
			{Name: "title", Type: TypeString},
			{Name: "summary", Type: TypeString},
			{Name: "keywords", Type: TypeStringArray},
			{Name: "topics", Type: TypeStringArray},
		},
		systemPrompt: `You are a metadata generation assistant for documents.

Given the full content of a document, generate structured JSON metadata
with the following keys:

- "title": A short, descriptive title of the document.
- "summary": A concise paragraph summarizing the document content.
- "keywords": A list of 5-10 keywords (single words or short phrases).
- "topics": A list of higher-level topics or domains related to the content.

The output MUST be a valid JSON object with those keys.
`,
	},
}
