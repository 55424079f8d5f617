package dal

import (
	"context"
	"errors"
)

// BlobName identifies one of the persisted draft documents
type BlobName string

const (
	BlobProtections BlobName = "protections"
	BlobDraftOrder  BlobName = "draft_order"
	BlobDraftPicks  BlobName = "draft_picks"
	BlobDispersed   BlobName = "dispersed"
)

// AllBlobs lists every blob cleared by a full reset
var AllBlobs = []BlobName{BlobProtections, BlobDraftOrder, BlobDraftPicks, BlobDispersed}

var ErrBlobNotFound = errors.New("blob not found")

// BlobStore persists whole JSON documents by name. Writes replace the stored
// document; there is no merging.
type BlobStore interface {
	Get(ctx context.Context, name BlobName) ([]byte, error)
	Set(ctx context.Context, name BlobName, data []byte) error
	Reset(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
