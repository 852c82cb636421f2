package twitter

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana/binary"
)

const (
	TweetAccountSize = (discriminatorSize + // discriminator
		32 + // author
		4 + MaxTopicLength + // topic
		4 + MaxContentLength + // content
		8 + // likes
		8 + // dislikes
		1) // bump

	ReactionAccountSize = (discriminatorSize + // discriminator
		32 + // author
		32 + // parent tweet
		1 + // reaction
		1) // bump

	CommentAccountSize = (discriminatorSize + // discriminator
		32 + // author
		32 + // parent tweet
		4 + MaxCommentLength + // content
		1) // bump
)

var (
	tweetAccountDiscriminator    = []byte{229, 13, 110, 58, 118, 6, 20, 79}
	reactionAccountDiscriminator = []byte{226, 61, 100, 191, 223, 221, 142, 139}
	commentAccountDiscriminator  = []byte{150, 135, 96, 244, 55, 199, 50, 65}
)

type ReactionType uint8

const (
	ReactionTypeLike ReactionType = iota
	ReactionTypeDislike
)

func (t ReactionType) String() string {
	switch t {
	case ReactionTypeLike:
		return "like"
	case ReactionTypeDislike:
		return "dislike"
	}
	return "unknown"
}

type TweetAccount struct {
	Author   ed25519.PublicKey
	Topic    string
	Content  string
	Likes    uint64
	Dislikes uint64
	Bump     uint8
}

// Marshal serializes the tweet into a fixed TweetAccountSize buffer. Topic and
// content must be within their maximum lengths.
func (obj *TweetAccount) Marshal() []byte {
	data := make([]byte, TweetAccountSize)

	var offset int
	binary.PutDiscriminator(data, tweetAccountDiscriminator, &offset)
	binary.PutKey32(data[offset:], obj.Author, &offset)
	binary.PutString(data[offset:], obj.Topic, &offset)
	binary.PutString(data[offset:], obj.Content, &offset)
	binary.PutUint64(data[offset:], obj.Likes, &offset)
	binary.PutUint64(data[offset:], obj.Dislikes, &offset)
	binary.PutUint8(data[offset:], obj.Bump, &offset)

	return data
}

func (obj *TweetAccount) Unmarshal(data []byte) error {
	if len(data) < discriminatorSize+32+4 {
		return ErrInvalidAccountData
	}
	if !bytes.Equal(data[:discriminatorSize], tweetAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	offset := discriminatorSize
	binary.GetKey32(data[offset:], &obj.Author, &offset)
	if err := binary.GetString(data[offset:], &obj.Topic, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if len(data) < offset+4 {
		return ErrInvalidAccountData
	}
	if err := binary.GetString(data[offset:], &obj.Content, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if len(data) < offset+8+8+1 {
		return ErrInvalidAccountData
	}
	binary.GetUint64(data[offset:], &obj.Likes, &offset)
	binary.GetUint64(data[offset:], &obj.Dislikes, &offset)
	binary.GetUint8(data[offset:], &obj.Bump, &offset)

	return nil
}

type ReactionAccount struct {
	Author      ed25519.PublicKey
	ParentTweet ed25519.PublicKey
	Reaction    ReactionType
	Bump        uint8
}

func (obj *ReactionAccount) Marshal() []byte {
	data := make([]byte, ReactionAccountSize)

	var offset int
	binary.PutDiscriminator(data, reactionAccountDiscriminator, &offset)
	binary.PutKey32(data[offset:], obj.Author, &offset)
	binary.PutKey32(data[offset:], obj.ParentTweet, &offset)
	binary.PutUint8(data[offset:], uint8(obj.Reaction), &offset)
	binary.PutUint8(data[offset:], obj.Bump, &offset)

	return data
}

func (obj *ReactionAccount) Unmarshal(data []byte) error {
	if len(data) < ReactionAccountSize {
		return ErrInvalidAccountData
	}
	if !bytes.Equal(data[:discriminatorSize], reactionAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	var reaction uint8

	offset := discriminatorSize
	binary.GetKey32(data[offset:], &obj.Author, &offset)
	binary.GetKey32(data[offset:], &obj.ParentTweet, &offset)
	binary.GetUint8(data[offset:], &reaction, &offset)
	binary.GetUint8(data[offset:], &obj.Bump, &offset)

	obj.Reaction = ReactionType(reaction)
	if obj.Reaction != ReactionTypeLike && obj.Reaction != ReactionTypeDislike {
		return ErrInvalidAccountData
	}

	return nil
}

type CommentAccount struct {
	Author      ed25519.PublicKey
	ParentTweet ed25519.PublicKey
	Content     string
	Bump        uint8
}

func (obj *CommentAccount) Marshal() []byte {
	data := make([]byte, CommentAccountSize)

	var offset int
	binary.PutDiscriminator(data, commentAccountDiscriminator, &offset)
	binary.PutKey32(data[offset:], obj.Author, &offset)
	binary.PutKey32(data[offset:], obj.ParentTweet, &offset)
	binary.PutString(data[offset:], obj.Content, &offset)
	binary.PutUint8(data[offset:], obj.Bump, &offset)

	return data
}

func (obj *CommentAccount) Unmarshal(data []byte) error {
	if len(data) < discriminatorSize+32+32+4 {
		return ErrInvalidAccountData
	}
	if !bytes.Equal(data[:discriminatorSize], commentAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	offset := discriminatorSize
	binary.GetKey32(data[offset:], &obj.Author, &offset)
	binary.GetKey32(data[offset:], &obj.ParentTweet, &offset)
	if err := binary.GetString(data[offset:], &obj.Content, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if len(data) < offset+1 {
		return ErrInvalidAccountData
	}
	binary.GetUint8(data[offset:], &obj.Bump, &offset)

	return nil
}
