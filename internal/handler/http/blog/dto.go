// Package blog provides HTTP handlers for the blog content API.
// It includes handlers for the paginated post listing, single post detail,
// sidebar rails, and the category index.
package blog

import (
	"time"

	"savvy-blog/internal/domain/entity"
)

// CategoryDTO represents the JSON structure for a blog category.
type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostSummaryDTO represents the JSON structure for a post in the listing.
// Content is omitted from listings to keep pages light.
type PostSummaryDTO struct {
	ID               int64         `json:"id"`
	Slug             string        `json:"slug"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	FeaturedImageURL string        `json:"featured_image_url"`
	AuthorName       string        `json:"author_name"`
	CreatedAt        time.Time     `json:"created_at"`
	Categories       []CategoryDTO `json:"categories"`
}

// PostDTO represents the JSON structure for a full post.
type PostDTO struct {
	PostSummaryDTO
	Content      string `json:"content"`
	MetaImageURL string `json:"meta_image_url"`
}

// RailPostDTO represents the JSON structure for a post in a sidebar rail.
// Rails only carry what the card layout needs.
type RailPostDTO struct {
	ID               int64  `json:"id"`
	Slug             string `json:"slug"`
	Title            string `json:"title"`
	FeaturedImageURL string `json:"featured_image_url"`
}

// SidebarDTO represents the JSON structure for the sidebar response.
type SidebarDTO struct {
	Recent  []RailPostDTO `json:"recent"`
	Related []RailPostDTO `json:"related"`
}

func toCategoryDTOs(categories []entity.BlogCategory) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryDTO{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return dtos
}

func toSummaryDTO(post *entity.BlogPost) PostSummaryDTO {
	return PostSummaryDTO{
		ID:               post.ID,
		Slug:             post.Slug,
		Title:            post.Title,
		Description:      post.Description,
		FeaturedImageURL: post.FeaturedImageURL,
		AuthorName:       post.AuthorName,
		CreatedAt:        post.CreatedAt,
		Categories:       toCategoryDTOs(post.Categories),
	}
}

func toPostDTO(post *entity.BlogPost) PostDTO {
	return PostDTO{
		PostSummaryDTO: toSummaryDTO(post),
		Content:        post.Content,
		MetaImageURL:   post.MetaImageURL,
	}
}

func toRailDTOs(posts []*entity.BlogPost) []RailPostDTO {
	dtos := make([]RailPostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, RailPostDTO{
			ID:               p.ID,
			Slug:             p.Slug,
			Title:            p.Title,
			FeaturedImageURL: p.FeaturedImageURL,
		})
	}
	return dtos
}
