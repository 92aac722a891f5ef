package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Key layout. Values under content:, source:, tag:, share: and user: are
// JSON documents; idx: keys hold the id (or hash) they point to.

func contentKey(id string) []byte {
	return []byte("content:" + id)
}

// ownerIndexPrefix scans an owner's content in creation order.
// Format: idx:owner:{owner}:
func ownerIndexPrefix(owner string) []byte {
	return []byte(fmt.Sprintf("idx:owner:%s:", owner))
}

// Format: idx:owner:{owner}:{createdAt unix nanos, zero padded}:{id}
func ownerIndexKey(owner string, createdAt time.Time, id string) []byte {
	return []byte(fmt.Sprintf("idx:owner:%s:%020d:%s", owner, createdAt.UnixNano(), id))
}

// Format: idx:ownerlink:{owner}:{linkDigest}
func ownerLinkKey(owner, link string) []byte {
	return []byte(fmt.Sprintf("idx:ownerlink:%s:%s", owner, linkDigest(link)))
}

// Format: idx:link:{linkDigest}:
func linkIndexPrefix(link string) []byte {
	return []byte(fmt.Sprintf("idx:link:%s:", linkDigest(link)))
}

func linkIndexKey(link, id string) []byte {
	return append(linkIndexPrefix(link), id...)
}

// linkDigest keeps arbitrary URLs (which contain ':') out of key separators.
func linkDigest(link string) string {
	sum := sha256.Sum256([]byte(link))
	return hex.EncodeToString(sum[:])
}

const sourcePrefix = "source:"

func sourceKey(name string) []byte {
	return []byte(sourcePrefix + name)
}

const tagPrefix = "tag:"

func tagKey(id string) []byte {
	return []byte(tagPrefix + id)
}

func tagTitleKey(title string) []byte {
	return []byte("idx:tagtitle:" + strings.ToLower(strings.TrimSpace(title)))
}

func shareKey(hash string) []byte {
	return []byte("share:" + hash)
}

// Format: idx:sharebrain:{owner}
func collectionShareKey(owner string) []byte {
	return []byte("idx:sharebrain:" + owner)
}

// Format: idx:shareitem:{owner}:{contentID}
func itemShareKey(owner, contentID string) []byte {
	return []byte(fmt.Sprintf("idx:shareitem:%s:%s", owner, contentID))
}

func userKey(id string) []byte {
	return []byte("user:" + id)
}

func usernameKey(username string) []byte {
	return []byte("idx:username:" + strings.ToLower(username))
}

func telegramKey(telegramID int64) []byte {
	return []byte(fmt.Sprintf("idx:telegram:%d", telegramID))
}
