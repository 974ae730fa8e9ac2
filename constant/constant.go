package constant

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}

type SummaryProvider string

const (
	SummaryProviderOpenAI SummaryProvider = "openai"
	SummaryProviderGemini SummaryProvider = "gemini"
)

func (p SummaryProvider) String() string {
	return string(p)
}

// Upstream speech-to-text rejects files above 25 MB.
const MaxUpstreamFileSize = 25 * 1024 * 1024

const (
	DefaultChunkSize     = 24 * 1024 * 1024
	DefaultMaxUploadSize = 100 * 1024 * 1024
	DefaultPageSize      = 10
	MaxPageSize          = 100
)

var AllowedAudioTypes = []string{
	"audio/mpeg",
	"audio/wav",
	"audio/x-m4a",
	"audio/mp4",
}

const (
	NoKeyPoints   = "No key points identified"
	NoActionItems = "No action items identified"
	NoMainTopics  = "No main topics identified"
)

const (
	MeetingExchange      = "meeting_exchange"
	MeetingSummarizedKey = "meeting.summarized"
)
