package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/s/librekpi/internal/apperrors"
	"github.com/s/librekpi/internal/database"
	"github.com/s/librekpi/internal/models"
)

// CommentRepository stores threaded course comments.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create stores a comment. A reply must point at a comment of the same
// course.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := models.Validate(comment); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if comment.ReplyTo != nil {
			var parent models.Comment
			err := tx.Select("id", "course_id").First(&parent, *comment.ReplyTo).Error
			if database.IsNotFound(err) {
				return apperrors.ErrParentCommentInvalid
			}
			if err != nil {
				return fmt.Errorf("failed to load parent comment: %w", err)
			}
			if !sameCourse(parent.CourseID, comment.CourseID) {
				return apperrors.ErrParentCommentInvalid
			}
		}

		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return nil
	})
}

// Replies returns the direct replies to a comment, oldest first.
func (r *CommentRepository) Replies(ctx context.Context, parentID uint) ([]models.Comment, error) {
	var replies []models.Comment
	err := r.db.WithContext(ctx).
		Where("reply_to = ?", parentID).
		Order("created, id").
		Find(&replies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list replies to comment %d: %w", parentID, err)
	}
	return replies, nil
}

// Thread loads every comment of a course and arranges them as a reply tree.
func (r *CommentRepository) Thread(ctx context.Context, courseID uint) ([]*CommentNode, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created, id").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load comments of course %d: %w", courseID, err)
	}
	return BuildThread(comments), nil
}

// CommentNode is a comment with its replies.
type CommentNode struct {
	Comment models.Comment
	Replies []*CommentNode
}

// BuildThread arranges comments into trees using ReplyTo. Comments whose
// parent is not in the input become roots, and so does every comment whose
// chain of parents leads back to itself. Input order is kept among siblings.
func BuildThread(comments []models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	parents := make(map[uint]uint, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &CommentNode{Comment: comments[i]}
		if p := comments[i].ReplyTo; p != nil {
			parents[comments[i].ID] = *p
		}
	}
	for id, p := range parents {
		if _, ok := nodes[p]; !ok {
			delete(parents, id)
		}
	}

	var roots []*CommentNode
	for i := range comments {
		id := comments[i].ID
		node := nodes[id]
		if parentID, ok := parents[id]; ok && !inReplyCycle(id, parents) {
			nodes[parentID].Replies = append(nodes[parentID].Replies, node)
			continue
		}
		roots = append(roots, node)
	}
	return roots
}

// inReplyCycle reports whether following parents from id returns to id.
func inReplyCycle(id uint, parents map[uint]uint) bool {
	seen := map[uint]bool{}
	for cur := id; ; {
		p, ok := parents[cur]
		if !ok {
			return false
		}
		if p == id {
			return true
		}
		if seen[p] {
			return false
		}
		seen[p] = true
		cur = p
	}
}

// Size counts the node and all its descendants.
func (n *CommentNode) Size() int {
	size := 1
	for _, r := range n.Replies {
		size += r.Size()
	}
	return size
}

func sameCourse(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
