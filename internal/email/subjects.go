package email

const (
	subjectSubmissionReceiptFmt = "Transaction submitted: %s"
)
