package session

// QuoteState is the lifecycle of the route set for the current intent.
type QuoteState string

const (
	QuotesIdle    QuoteState = "idle"
	QuotesLoading QuoteState = "loading"
	QuotesReady   QuoteState = "ready"
	QuotesEmpty   QuoteState = "empty"
	QuotesError   QuoteState = "error"
)

// SubmissionState is the lifecycle of a swap submission.
type SubmissionState string

const (
	SubmissionIdle    SubmissionState = "idle"
	SubmissionPending SubmissionState = "pending"
	SubmissionSuccess SubmissionState = "success"
	SubmissionError   SubmissionState = "error"
)

// Reasons a swap cannot be submitted yet, in the order they are checked.
const (
	ReasonConnectWallet   = "Connect Wallet"
	ReasonEnterAmount     = "Enter an amount"
	ReasonEnterReceiver   = "Enter Receiver Address"
	ReasonInvalidReceiver = "Invalid Receiver Address Format"
	ReasonFindingRoutes   = "Finding Routes..."
	ReasonTryAgain        = "Try Again"
	ReasonNoRoutes        = "No Routes Found"
	ReasonSelectRoute     = "Select a Route"
)
