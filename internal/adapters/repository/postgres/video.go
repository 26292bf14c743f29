package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codeflix-catalog/internal/core/domain"
	"codeflix-catalog/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type sqlVideoRepository struct {
	db SQLQuerier
}

// NewSqlVideoRepository creates sqlVideoRepository that implements port.VideoRepository
func NewSqlVideoRepository(db SQLQuerier) port.VideoRepository {
	return &sqlVideoRepository{db: db}
}

// relation describes a join table between videos and a catalog entity
type relation struct {
	table  string
	column string
	ids    func(v *domain.Video) domain.IDSet
	set    func(v *domain.Video, ids domain.IDSet)
}

var relations = []relation{
	{
		table:  "video_categories",
		column: "category_id",
		ids:    func(v *domain.Video) domain.IDSet { return v.Categories },
		set:    func(v *domain.Video, ids domain.IDSet) { v.Categories = ids },
	},
	{
		table:  "video_genres",
		column: "genre_id",
		ids:    func(v *domain.Video) domain.IDSet { return v.Genres },
		set:    func(v *domain.Video, ids domain.IDSet) { v.Genres = ids },
	},
	{
		table:  "video_cast_members",
		column: "cast_member_id",
		ids:    func(v *domain.Video) domain.IDSet { return v.CastMembers },
		set:    func(v *domain.Video, ids domain.IDSet) { v.CastMembers = ids },
	},
}

// Save inserts a new video with its relations and media
func (s *sqlVideoRepository) Save(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (id, title, description, launch_year, duration, published, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.LaunchYear,
		video.Duration,
		video.Published,
		string(video.Rating),
	)
	if err != nil {
		return fmt.Errorf("error inserting video %s: %w", video.ID, err)
	}

	return s.saveChildren(ctx, video)
}

// Update overwrites every column, relation and media slot of an existing video
func (s *sqlVideoRepository) Update(ctx context.Context, video *domain.Video) error {
	query := `
		UPDATE videos
		SET title = $2, description = $3, launch_year = $4, duration = $5,
		    published = $6, rating = $7, updated_at = NOW()
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.LaunchYear,
		video.Duration,
		video.Published,
		string(video.Rating),
	)
	if err != nil {
		return fmt.Errorf("error updating video %s: %w", video.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrVideoNotFound, video.ID)
	}

	for _, rel := range relations {
		deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE video_id = $1", rel.table)
		if _, err := s.db.ExecContext(ctx, deleteQuery, video.ID); err != nil {
			return fmt.Errorf("error clearing %s: %w", rel.table, err)
		}
	}

	return s.saveChildren(ctx, video)
}

// GetByID finds a video by id
func (s *sqlVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	return s.get(ctx, id, false)
}

// GetByIDForUpdate finds a video by id and locks its row until the transaction ends
func (s *sqlVideoRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	return s.get(ctx, id, true)
}

func (s *sqlVideoRepository) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Video, error) {
	query := `
		SELECT id, title, description, launch_year, duration, published, rating
		FROM videos WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var row dbVideo
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.Title,
		&row.Description,
		&row.LaunchYear,
		&row.Duration,
		&row.Published,
		&row.Rating,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrVideoNotFound, id)
		}
		return nil, err
	}

	video := row.ToDomain()

	for _, rel := range relations {
		ids, err := s.findRelation(ctx, rel, id)
		if err != nil {
			return nil, err
		}
		rel.set(video, ids)
	}

	if err := s.loadAudioVideoMedias(ctx, video); err != nil {
		return nil, err
	}
	if err := s.loadImageMedias(ctx, video); err != nil {
		return nil, err
	}

	return video, nil
}

func (s *sqlVideoRepository) saveChildren(ctx context.Context, video *domain.Video) error {
	for _, rel := range relations {
		ids := rel.ids(video)
		if len(ids) == 0 {
			continue
		}
		query := fmt.Sprintf(
			"INSERT INTO %s (video_id, %s) SELECT $1, UNNEST($2::uuid[])",
			rel.table, rel.column,
		)
		if _, err := s.db.ExecContext(ctx, query, video.ID, pq.Array(uuidStrings(ids.Slice()))); err != nil {
			return fmt.Errorf("error inserting %s: %w", rel.table, err)
		}
	}

	audioVideo := []struct {
		mediaType domain.MediaType
		media     *domain.AudioVideoMedia
	}{
		{domain.MediaTypeVideo, video.Video},
		{domain.MediaTypeTrailer, video.Trailer},
	}
	for _, slot := range audioVideo {
		if err := s.saveAudioVideoMedia(ctx, video.ID, slot.mediaType, slot.media); err != nil {
			return err
		}
	}

	images := []struct {
		slot  domain.ImageSlot
		image *domain.ImageMedia
	}{
		{domain.ImageSlotBanner, video.Banner},
		{domain.ImageSlotThumbnail, video.Thumbnail},
		{domain.ImageSlotThumbnailHalf, video.ThumbnailHalf},
	}
	for _, slot := range images {
		if err := s.saveImageMedia(ctx, video.ID, slot.slot, slot.image); err != nil {
			return err
		}
	}

	return nil
}

func (s *sqlVideoRepository) saveAudioVideoMedia(ctx context.Context, videoID uuid.UUID, mediaType domain.MediaType, media *domain.AudioVideoMedia) error {
	if media == nil {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM audio_video_medias WHERE video_id = $1 AND media_type = $2`,
			videoID, string(mediaType),
		)
		return err
	}

	query := `
		INSERT INTO audio_video_medias (video_id, media_type, name, checksum, raw_location, encoded_location, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (video_id, media_type) DO UPDATE
		SET name = EXCLUDED.name, checksum = EXCLUDED.checksum, raw_location = EXCLUDED.raw_location,
		    encoded_location = EXCLUDED.encoded_location, status = EXCLUDED.status`

	_, err := s.db.ExecContext(ctx, query,
		videoID,
		string(mediaType),
		media.Name,
		media.Checksum,
		media.RawLocation,
		media.EncodedLocation,
		string(media.Status),
	)
	if err != nil {
		return fmt.Errorf("error saving %s media: %w", mediaType, err)
	}
	return nil
}

func (s *sqlVideoRepository) saveImageMedia(ctx context.Context, videoID uuid.UUID, slot domain.ImageSlot, image *domain.ImageMedia) error {
	if image == nil {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM image_medias WHERE video_id = $1 AND slot = $2`,
			videoID, string(slot),
		)
		return err
	}

	query := `
		INSERT INTO image_medias (video_id, slot, name, checksum, location)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (video_id, slot) DO UPDATE
		SET name = EXCLUDED.name, checksum = EXCLUDED.checksum, location = EXCLUDED.location`

	if _, err := s.db.ExecContext(ctx, query, videoID, string(slot), image.Name, image.Checksum, image.Location); err != nil {
		return fmt.Errorf("error saving %s image: %w", slot, err)
	}
	return nil
}

func (s *sqlVideoRepository) findRelation(ctx context.Context, rel relation, videoID uuid.UUID) (domain.IDSet, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE video_id = $1", rel.column, rel.table)

	rows, err := s.db.QueryContext(ctx, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", rel.table, err)
	}
	defer rows.Close()

	ids := domain.IDSet{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", rel.table, err)
		}
		ids[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", rel.table, err)
	}
	return ids, nil
}

func (s *sqlVideoRepository) loadAudioVideoMedias(ctx context.Context, video *domain.Video) error {
	query := `
		SELECT media_type, name, checksum, raw_location, encoded_location, status
		FROM audio_video_medias WHERE video_id = $1`

	rows, err := s.db.QueryContext(ctx, query, video.ID)
	if err != nil {
		return fmt.Errorf("error querying audio video medias: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var media domain.AudioVideoMedia
		var mediaType, status string
		if err := rows.Scan(&mediaType, &media.Name, &media.Checksum, &media.RawLocation, &media.EncodedLocation, &status); err != nil {
			return fmt.Errorf("error scanning audio video media: %w", err)
		}
		media.MediaType = domain.MediaType(mediaType)
		media.Status = domain.MediaStatus(status)

		switch media.MediaType {
		case domain.MediaTypeVideo:
			video.Video = &media
		case domain.MediaTypeTrailer:
			video.Trailer = &media
		}
	}

	return rows.Err()
}

func (s *sqlVideoRepository) loadImageMedias(ctx context.Context, video *domain.Video) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, name, checksum, location FROM image_medias WHERE video_id = $1`,
		video.ID,
	)
	if err != nil {
		return fmt.Errorf("error querying image medias: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var image domain.ImageMedia
		var slot string
		if err := rows.Scan(&slot, &image.Name, &image.Checksum, &image.Location); err != nil {
			return fmt.Errorf("error scanning image media: %w", err)
		}

		switch domain.ImageSlot(slot) {
		case domain.ImageSlotBanner:
			video.Banner = &image
		case domain.ImageSlotThumbnail:
			video.Thumbnail = &image
		case domain.ImageSlotThumbnailHalf:
			video.ThumbnailHalf = &image
		}
	}

	return rows.Err()
}

// dbVideo represents a video row
type dbVideo struct {
	ID          uuid.UUID       `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	LaunchYear  int             `db:"launch_year"`
	Duration    decimal.Decimal `db:"duration"`
	Published   bool            `db:"published"`
	Rating      string          `db:"rating"`
}

// ToDomain converts to domain.Video
func (v *dbVideo) ToDomain() *domain.Video {
	return &domain.Video{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		LaunchYear:  v.LaunchYear,
		Duration:    v.Duration,
		Published:   v.Published,
		Rating:      domain.Rating(v.Rating),
	}
}
