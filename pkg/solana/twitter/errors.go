package twitter

type TwitterError uint32

const (
	// Topic exceeds MaxTopicLength
	ErrTopicTooLong TwitterError = iota + 0x1770

	// Content exceeds MaxContentLength
	ErrContentTooLong

	// The like counter would overflow
	ErrMaxLikesReached

	// The dislike counter would overflow
	ErrMaxDislikesReached

	// Comment exceeds MaxCommentLength
	ErrCommentTooLong

	// The like counter would underflow
	ErrMinLikesReached

	// The dislike counter would underflow
	ErrMinDislikesReached
)

func (e TwitterError) Error() string {
	switch e {
	case ErrTopicTooLong:
		return "topic too long"
	case ErrContentTooLong:
		return "content too long"
	case ErrMaxLikesReached:
		return "max likes reached"
	case ErrMaxDislikesReached:
		return "max dislikes reached"
	case ErrCommentTooLong:
		return "comment too long"
	case ErrMinLikesReached:
		return "min likes reached"
	case ErrMinDislikesReached:
		return "min dislikes reached"
	}
	return "unknown twitter error"
}

func (e TwitterError) CustomErrorCode() uint32 {
	return uint32(e)
}
