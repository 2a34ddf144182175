package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/devconnect-go/apperror"
)

// ProfileService is the profile store: it owns every query against the
// profiles table plus the account deletion flow.
type ProfileService struct {
	db *pgxpool.Pool
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *pgxpool.Pool) *ProfileService {
	return &ProfileService{db: db}
}

// profileSelect joins the owning user's name and avatar into every profile
// read, mirroring what the API returns.
const profileSelect = `
	SELECT p.user_id, u.name, u.avatar,
	       p.company, p.website, p.location, p.bio,
	       p.status, p.github_username, p.skills, p.social,
	       p.experience, p.education, p.updated_at
	FROM profiles p
	JOIN users u ON u.id = p.user_id`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.User.ID, &p.User.Name, &p.User.Avatar,
		&p.Company, &p.Website, &p.Location, &p.Bio,
		&p.Status, &p.GithubUsername, &p.Skills, &p.Social,
		&p.Experience, &p.Education, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// noProfileError reports a missing profile the way the API contract does:
// a 400 with a route-specific message rather than a 404.
func noProfileError(msg string) *apperror.AppError {
	return apperror.NewNotFoundError(msg, nil).WithStatus(http.StatusBadRequest)
}

// GetOwnProfile returns the caller's profile joined with their name and
// avatar, or a 400-class not-found when no profile exists yet.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID int32) (*Profile, error) {
	return s.getByUserID(ctx, userID, "There is no profile for this user")
}

// GetProfileByUserID returns the profile owned by the given user id.
func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID int32) (*Profile, error) {
	return s.getByUserID(ctx, userID, "Profile not found")
}

func (s *ProfileService) getByUserID(ctx context.Context, userID int32, missingMsg string) (*Profile, error) {
	row := s.db.QueryRow(ctx, profileSelect+` WHERE p.user_id = $1`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, noProfileError(missingMsg)
		}
		return nil, apperror.NewDatabaseError("failed to get profile", err)
	}
	return p, nil
}

// ListProfiles returns every profile, each joined with its owner's name and
// avatar.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.Query(ctx, profileSelect+` ORDER BY p.user_id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list profiles", err)
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan profile", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list profiles", err)
	}
	return profiles, nil
}

// buildUpsertFields translates the sparse request into the column/value pairs
// that will be written. Only fields supplied with a non-empty value appear;
// the social sub-object is rebuilt from the supplied non-empty keys on every
// upsert.
func buildUpsertFields(userID int32, req UpsertProfileRequest) ([]string, []any, error) {
	social, err := json.Marshal(socialFromRequest(req))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode social links: %w", err)
	}

	columns := []string{"user_id", "status", "skills", "social"}
	values := []any{userID, req.Status, SplitSkills(req.Skills), string(social)}

	optional := []struct {
		column string
		value  *string
	}{
		{"company", req.Company},
		{"website", req.Website},
		{"location", req.Location},
		{"bio", req.Bio},
		{"github_username", req.GithubUsername},
	}
	for _, f := range optional {
		// Empty strings count as absent, the same as a missing key.
		if f.value != nil && *f.value != "" {
			columns = append(columns, f.column)
			values = append(values, *f.value)
		}
	}
	return columns, values, nil
}

func socialFromRequest(req UpsertProfileRequest) SocialLinks {
	return SocialLinks{
		Youtube:   nonEmpty(req.Youtube),
		Twitter:   nonEmpty(req.Twitter),
		Linkedin:  nonEmpty(req.Linkedin),
		Instagram: nonEmpty(req.Instagram),
		Facebook:  nonEmpty(req.Facebook),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// UpsertProfile creates the caller's profile on first call and applies a
// sparse update on subsequent calls. A second upsert never creates a second
// row; the unique user_id key routes it to ON CONFLICT DO UPDATE.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID int32, req UpsertProfileRequest) (*Profile, error) {
	columns, values, err := buildUpsertFields(userID, req)
	if err != nil {
		return nil, apperror.NewInternalError("failed to build profile update", err)
	}

	placeholders := make([]string, len(columns))
	assignments := make([]string, 0, len(columns))
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col != "user_id" {
			assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}
	assignments = append(assignments, "updated_at = now()")

	query := fmt.Sprintf(
		`INSERT INTO profiles (%s) VALUES (%s)
		 ON CONFLICT (user_id) DO UPDATE SET %s`,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(assignments, ", "),
	)
	if _, err := s.db.Exec(ctx, query, values...); err != nil {
		return nil, apperror.NewDatabaseError("failed to upsert profile", err)
	}

	return s.GetOwnProfile(ctx, userID)
}

// DeleteAccount removes the caller's profile and then the user record itself,
// in that order, inside one transaction. Posts are intentionally left in
// place.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID int32) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return apperror.NewDatabaseError("failed to delete profile", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return apperror.NewDatabaseError("failed to delete user", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewDatabaseError("failed to commit account deletion", err)
	}
	return nil
}

// AddExperience assigns a fresh id to the record and appends it to the end of
// the caller's experience sequence. The append is a single jsonb update; if
// no profile row exists, nothing is updated and the caller gets the same
// missing-profile error as a profile read.
func (s *ProfileService) AddExperience(ctx context.Context, userID int32, req AddExperienceRequest) (*Profile, error) {
	exp := Experience{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	return s.appendEntry(ctx, userID, "experience", exp)
}

// RemoveExperience removes the entry with the given id from the caller's
// experience sequence, preserving the relative order of the remainder. An
// absent id is a no-op and still succeeds.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID int32, entryID string) (*Profile, error) {
	return s.removeEntry(ctx, userID, "experience", entryID)
}

// AddEducation mirrors AddExperience for the education sequence.
func (s *ProfileService) AddEducation(ctx context.Context, userID int32, req AddEducationRequest) (*Profile, error) {
	edu := Education{
		ID:           uuid.NewString(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	return s.appendEntry(ctx, userID, "education", edu)
}

// RemoveEducation mirrors RemoveExperience for the education sequence.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID int32, entryID string) (*Profile, error) {
	return s.removeEntry(ctx, userID, "education", entryID)
}

// appendEntry pushes a record onto the end of one of the two jsonb
// sub-collections. The column name comes from a fixed internal set, never
// from user input.
func (s *ProfileService) appendEntry(ctx context.Context, userID int32, column string, entry any) (*Profile, error) {
	payload, err := json.Marshal([]any{entry})
	if err != nil {
		return nil, apperror.NewInternalError("failed to encode entry", err)
	}

	query := fmt.Sprintf(
		`UPDATE profiles SET %s = %s || $2::jsonb, updated_at = now() WHERE user_id = $1`,
		column, column,
	)
	tag, err := s.db.Exec(ctx, query, userID, string(payload))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to append "+column+" entry", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, noProfileError("There is no profile for this user")
	}

	return s.GetOwnProfile(ctx, userID)
}

// removeEntry filters one id out of a jsonb sub-collection in a single
// statement, keeping the remaining elements in their original order.
func (s *ProfileService) removeEntry(ctx context.Context, userID int32, column string, entryID string) (*Profile, error) {
	query := fmt.Sprintf(
		`UPDATE profiles SET %s = COALESCE(
			(SELECT jsonb_agg(elem ORDER BY ord)
			 FROM jsonb_array_elements(%s) WITH ORDINALITY AS t(elem, ord)
			 WHERE elem->>'id' <> $2),
			'[]'::jsonb
		), updated_at = now()
		WHERE user_id = $1`,
		column, column,
	)
	tag, err := s.db.Exec(ctx, query, userID, entryID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to remove "+column+" entry", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, noProfileError("There is no profile for this user")
	}

	return s.GetOwnProfile(ctx, userID)
}
