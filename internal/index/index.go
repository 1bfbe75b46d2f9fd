// Package index 为已加载的聊天记录提供全文检索，报告页的"原文回看"由它支撑。
// 索引只存在于内存中，进程退出即销毁。
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/sjzar/chatrewind/internal/model"
)

// Hit 单条检索命中。
type Hit struct {
	Message *model.Message `json:"message"`
	Sender  string         `json:"sender"`
	Snippet string         `json:"snippet,omitempty"`
	Score   float64        `json:"score"`
}

// Index wraps an in-memory Bleve index with concurrency control.
type Index struct {
	mu  sync.RWMutex
	idx bleve.Index
}

// New creates an empty in-memory index with the default mapping.
func New() (*Index, error) {
	m := buildMapping()
	idx, err := bleve.NewMemOnly(m)
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// Close closes the underlying Bleve index.
func (i *Index) Close() error {
	if i == nil {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.idx == nil {
		return nil
	}
	return i.idx.Close()
}

// IndexMessages indexes a batch of messages. senderOf resolves each message
// to its canonical sender id; only text and quote messages carry content.
func (i *Index) IndexMessages(messages []*model.Message, senderOf func(*model.Message) string) error {
	if len(messages) == 0 {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.idx == nil {
		return errors.New("index not initialized")
	}

	batch := i.idx.NewBatch()
	const batchSize = 250
	for n, msg := range messages {
		if msg == nil {
			continue
		}
		doc, err := newDocument(n, msg, senderOf(msg))
		if err != nil {
			return err
		}
		if err := batch.Index(doc.ID, doc); err != nil {
			return fmt.Errorf("batch index: %w", err)
		}
		if (n+1)%batchSize == 0 {
			if err := i.idx.Batch(batch); err != nil {
				return fmt.Errorf("flush batch: %w", err)
			}
			batch = i.idx.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := i.idx.Batch(batch); err != nil {
			return fmt.Errorf("flush final batch: %w", err)
		}
	}
	return nil
}

// Search executes a full-text search with optional sender and time filters.
func (i *Index) Search(input string, senders []string, startUnix, endUnix int64, offset, limit int) ([]*Hit, int, error) {
	queryObj := buildQuery(input, senders, startUnix, endUnix)
	if queryObj == nil {
		return []*Hit{}, 0, nil
	}

	i.mu.RLock()
	idx := i.idx
	i.mu.RUnlock()
	if idx == nil {
		return nil, 0, errors.New("index not initialized")
	}

	if limit <= 0 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	searchRequest := bleve.NewSearchRequestOptions(queryObj, limit, offset, false)
	searchRequest.Highlight = bleve.NewHighlightWithStyle("html")
	searchRequest.Fields = []string{"message_json", "sender"}
	searchRequest.IncludeLocations = false

	result, err := idx.Search(searchRequest)
	if err != nil {
		return nil, 0, fmt.Errorf("bleve search: %w", err)
	}

	hits := make([]*Hit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		messageJSON, ok := hit.Fields["message_json"].(string)
		if !ok || messageJSON == "" {
			continue
		}
		var msg model.Message
		if err := json.Unmarshal([]byte(messageJSON), &msg); err != nil {
			return nil, 0, fmt.Errorf("decode message: %w", err)
		}

		sender, _ := hit.Fields["sender"].(string)
		snippet := ""
		if frags, ok := hit.Fragments["content"]; ok && len(frags) > 0 {
			snippet = strings.Join(frags, " … ")
		}

		hits = append(hits, &Hit{
			Message: &msg,
			Sender:  sender,
			Snippet: snippet,
			Score:   hit.Score,
		})
	}

	return hits, int(result.Total), nil
}

// Document representation stored inside Bleve.
type document struct {
	ID          string `json:"id"`
	Sender      string `json:"sender"`
	Unix        int64  `json:"unix"`
	Content     string `json:"content"`
	MessageJSON string `json:"message_json"`
}

func newDocument(seq int, msg *model.Message, sender string) (*document, error) {
	content := ""
	if msg.IsText() || msg.Type == model.TypeQuote {
		content = msg.Content
	}
	messageJSON, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}
	return &document{
		ID:          strconv.FormatInt(msg.CreateTime, 10) + ":" + strconv.Itoa(seq),
		Sender:      sender,
		Unix:        msg.CreateTime,
		Content:     content,
		MessageJSON: string(messageJSON),
	}, nil
}

func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = "standard"

	docMapping := mapping.NewDocumentMapping()

	contentField := mapping.NewTextFieldMapping()
	contentField.Analyzer = "standard"
	contentField.Store = false
	docMapping.AddFieldMappingsAt("content", contentField)

	senderField := mapping.NewTextFieldMapping()
	senderField.Analyzer = "keyword"
	senderField.Store = true
	senderField.IncludeInAll = false
	docMapping.AddFieldMappingsAt("sender", senderField)

	unixField := mapping.NewNumericFieldMapping()
	unixField.Store = true
	docMapping.AddFieldMappingsAt("unix", unixField)

	messageField := mapping.NewTextFieldMapping()
	messageField.Analyzer = "keyword"
	messageField.Store = true
	messageField.Index = false
	docMapping.AddFieldMappingsAt("message_json", messageField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func buildQuery(input string, senders []string, startUnix, endUnix int64) query.Query {
	contentQuery := buildContentQuery(input)

	var must []query.Query
	if contentQuery != nil {
		must = append(must, contentQuery)
	}
	if len(senders) > 0 {
		if f := buildTermsFilter("sender", senders); f != nil {
			must = append(must, f)
		}
	}
	if startUnix > 0 || endUnix > 0 {
		var minPtr, maxPtr *float64
		if startUnix > 0 {
			min := float64(startUnix)
			minPtr = &min
		}
		if endUnix > 0 {
			max := float64(endUnix)
			maxPtr = &max
		}
		rangeQuery := query.NewNumericRangeQuery(minPtr, maxPtr)
		rangeQuery.SetField("unix")
		must = append(must, rangeQuery)
	}

	if len(must) == 0 {
		return nil
	}
	if len(must) == 1 {
		return must[0]
	}
	return query.NewConjunctionQuery(must)
}

func buildContentQuery(input string) query.Query {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}

	upper := strings.ToUpper(s)
	advanced := strings.ContainsAny(s, "\"'*()") ||
		strings.Contains(upper, " AND ") ||
		strings.Contains(upper, " OR ") ||
		strings.HasPrefix(upper, "NOT ")
	if advanced {
		return query.NewQueryStringQuery(s)
	}

	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil
	}

	conj := make([]query.Query, 0, len(tokens))
	for _, token := range tokens {
		mq := query.NewMatchQuery(token)
		mq.SetField("content")
		conj = append(conj, mq)
	}
	if len(conj) == 1 {
		return conj[0]
	}
	return query.NewConjunctionQuery(conj)
}

func buildTermsFilter(field string, values []string) query.Query {
	sanitized := make([]query.Query, 0, len(values))
	for _, val := range values {
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			continue
		}
		tq := query.NewTermQuery(trimmed)
		tq.SetField(field)
		sanitized = append(sanitized, tq)
	}
	if len(sanitized) == 0 {
		return nil
	}
	if len(sanitized) == 1 {
		return sanitized[0]
	}
	return query.NewDisjunctionQuery(sanitized)
}
