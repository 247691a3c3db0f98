package playdomain

import (
	"strconv"
	"time"
)

// ReviewsResponse é a resposta de applications/{packageName}/reviews
type ReviewsResponse struct {
	Reviews         []Review        `json:"reviews"`
	TokenPagination TokenPagination `json:"tokenPagination"`
}

type TokenPagination struct {
	NextPageToken string `json:"nextPageToken"`
}

type Review struct {
	ReviewID   string    `json:"reviewId"`
	AuthorName string    `json:"authorName"`
	Comments   []Comment `json:"comments"`
}

type Comment struct {
	UserComment      *UserComment      `json:"userComment,omitempty"`
	DeveloperComment *DeveloperComment `json:"developerComment,omitempty"`
}

type UserComment struct {
	Text             string    `json:"text"`
	LastModified     Timestamp `json:"lastModified"`
	StarRating       int       `json:"starRating"`
	ReviewerLanguage string    `json:"reviewerLanguage"`
	AppVersionName   string    `json:"appVersionName"`
}

type DeveloperComment struct {
	Text         string    `json:"text"`
	LastModified Timestamp `json:"lastModified"`
}

// Timestamp segue o formato da API: segundos chegam como string
type Timestamp struct {
	Seconds string `json:"seconds"`
	Nanos   int    `json:"nanos"`
}

func (t Timestamp) Time() (time.Time, error) {
	seconds, err := strconv.ParseInt(t.Seconds, 10, 64)
	if err != nil {
		return time.Time{}, err
	}

	return time.Unix(seconds, int64(t.Nanos)).UTC(), nil
}

// LastUserComment retorna o comentário do usuário mais recente da avaliação
func (r Review) LastUserComment() *UserComment {
	var last *UserComment
	for _, comment := range r.Comments {
		if comment.UserComment != nil {
			last = comment.UserComment
		}
	}
	return last
}
