package search

import (
	"fmt"
	"log"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"github.com/weavr-net/weavr-server/internal/entity"
)

const wisdomIndex = "wisdom"

// WisdomSearch keeps the Meilisearch wisdom index in sync. Queries run
// client-side against Meilisearch with a scoped tenant token.
type WisdomSearch interface {
	IndexWisdom(wisdom *entity.WeavrWisdom) error
	DeleteWisdom(id string) error
	GenerateSearchToken() (string, error)
}

type wisdomSearch struct {
	client        meilisearch.ServiceManager
	signingKeyUID string
	signingKey    string
}

func NewWisdomSearch(client meilisearch.ServiceManager) WisdomSearch {
	s := &wisdomSearch{client: client}
	s.initIndex()
	s.initSigningKey()
	return s
}

func (s *wisdomSearch) initIndex() {
	filterableAttrs := []string{"category", "author_id"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(wisdomIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update wisdom filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at", "up_votes"}
	if _, err := s.client.Index(wisdomIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update wisdom sortable attributes: %v", err)
	}

	log.Println("Meilisearch wisdom index initialized")
}

func (s *wisdomSearch) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{Limit: 20})
	if err != nil {
		log.Printf("Failed to get meilisearch keys: %v", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == "WisdomTokenSigner" {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			return
		}
	}

	expiry := time.Now().AddDate(100, 0, 0)
	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign wisdom search tokens",
		Name:        "WisdomTokenSigner",
		Actions:     []string{"search"},
		Indexes:     []string{wisdomIndex},
		ExpiresAt:   expiry,
	})
	if err != nil {
		log.Printf("Failed to create signing key: %v", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
	log.Println("Created new Meilisearch signing key")
}

type wisdomDoc struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	AuthorID  string `json:"author_id"`
	Tags      string `json:"tags"`
	UpVotes   int    `json:"up_votes"`
	CreatedAt int64  `json:"created_at"`
}

func (s *wisdomSearch) IndexWisdom(wisdom *entity.WeavrWisdom) error {
	doc := wisdomDoc{
		ID:        wisdom.ID.String(),
		Title:     wisdom.Title,
		Content:   wisdom.Content,
		Category:  string(wisdom.Category),
		AuthorID:  wisdom.AuthorID.String(),
		UpVotes:   wisdom.UpVotes,
		CreatedAt: wisdom.CreatedAt.Unix(),
	}
	if wisdom.Tags != nil {
		doc.Tags = *wisdom.Tags
	}

	task, err := s.client.Index(wisdomIndex).AddDocuments([]wisdomDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed wisdom %s, task id: %d", wisdom.ID, task.TaskUID)
	return nil
}

func (s *wisdomSearch) DeleteWisdom(id string) error {
	_, err := s.client.Index(wisdomIndex).DeleteDocument(id)
	return err
}

// GenerateSearchToken returns a tenant token limited to the wisdom index,
// valid for a day. All articles are public, so no filter rules apply.
func (s *wisdomSearch) GenerateSearchToken() (string, error) {
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	searchRules := map[string]any{
		wisdomIndex: map[string]any{"filter": nil},
	}

	return s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
}

func strPtr(s string) *string {
	return &s
}
