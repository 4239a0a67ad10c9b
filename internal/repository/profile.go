package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lifeline/lifeline-api/internal/model"
)

const profileColumns = `id, user_id, first_name, last_name, email, mobile_phone, location,
	blood_type, date_of_birth, gender, ec_name, ec_phone, ec_relationship,
	medical_history, is_available, created_at, updated_at`

// ProfileRepository handles donor profile persistence in MySQL.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a profile. Violations of the one-per-user and unique email
// keys surface as *DuplicateKeyError.
func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	query := `INSERT INTO profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	id := model.NewID()
	ecName, ecPhone, ecRel := contactColumns(p.EmergencyContact)

	_, err := r.db.ExecContext(ctx, query,
		id.Hex(), p.User.Hex(), p.FirstName, p.LastName, p.Email, p.MobilePhone, p.Location,
		nullString(p.BloodType), p.DateOfBirth, nullString(p.Gender), ecName, ecPhone, ecRel,
		p.MedicalHistory, p.IsAvailable, now, now,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return duplicateKey(err)
		}
		return err
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// GetByID retrieves a profile by ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id model.ID) (*model.Profile, error) {
	return r.getOne(ctx, `id = ?`, id.Hex())
}

// GetByUser retrieves the profile owned by userID.
func (r *ProfileRepository) GetByUser(ctx context.Context, userID model.ID) (*model.Profile, error) {
	return r.getOne(ctx, `user_id = ?`, userID.Hex())
}

// GetByEmail retrieves the profile registered under a normalized email.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return r.getOne(ctx, `email = ?`, email)
}

func (r *ProfileRepository) getOne(ctx context.Context, cond string, arg any) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + cond

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List retrieves profiles matching filter, newest first.
func (r *ProfileRepository) List(ctx context.Context, filter model.ProfileFilter) ([]model.Profile, error) {
	where := profileWhere(filter)
	query := `SELECT ` + profileColumns + ` FROM profiles` + where.sql() + ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []model.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}

	return profiles, rows.Err()
}

func profileWhere(filter model.ProfileFilter) *whereClause {
	where := &whereClause{}
	if filter.BloodType != "" {
		where.add("blood_type = ?", filter.BloodType)
	}
	if filter.Location != "" {
		where.add("LOWER(location) LIKE ?", likeContains(filter.Location))
	}
	if filter.Gender != "" {
		where.add("gender = ?", filter.Gender)
	}
	if filter.IsAvailable != nil {
		where.add("is_available = ?", *filter.IsAvailable)
	}
	return where
}

// Update applies patch to the profile and returns the stored result.
func (r *ProfileRepository) Update(ctx context.Context, id model.ID, patch model.ProfilePatch) (*model.Profile, error) {
	set := &setClause{}
	if patch.FirstName != nil {
		set.add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		set.add("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		set.add("email", *patch.Email)
	}
	if patch.MobilePhone != nil {
		set.add("mobile_phone", *patch.MobilePhone)
	}
	if patch.Location != nil {
		set.add("location", *patch.Location)
	}
	if patch.BloodType != nil {
		set.add("blood_type", *patch.BloodType)
	}
	if patch.DateOfBirth != nil {
		set.add("date_of_birth", *patch.DateOfBirth)
	}
	if patch.Gender != nil {
		set.add("gender", *patch.Gender)
	}
	if patch.EmergencyContact != nil {
		set.add("ec_name", patch.EmergencyContact.Name)
		set.add("ec_phone", patch.EmergencyContact.Phone)
		set.add("ec_relationship", patch.EmergencyContact.Relationship)
	}
	if patch.MedicalHistory != nil {
		set.add("medical_history", *patch.MedicalHistory)
	}
	if patch.IsAvailable != nil {
		set.add("is_available", *patch.IsAvailable)
	}
	set.add("updated_at", time.Now().UTC())

	query := `UPDATE profiles SET ` + set.sql() + ` WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, append(set.args, id.Hex())...); err != nil {
		if isDuplicateEntryError(err) {
			return nil, duplicateKey(err)
		}
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes the profile and returns it as it was before deletion.
func (r *ProfileRepository) Delete(ctx context.Context, id model.ID) (*model.Profile, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id.Hex())
	if err != nil {
		return nil, err
	}
	if err := deleted(result); err != nil {
		return nil, err
	}

	return p, nil
}

func scanProfile(row rowScanner) (*model.Profile, error) {
	var (
		rawID, rawUser         string
		bloodType, gender      sql.NullString
		ecName, ecPhone, ecRel sql.NullString
		dob                    sql.NullTime
	)
	p := &model.Profile{}
	err := row.Scan(
		&rawID, &rawUser, &p.FirstName, &p.LastName, &p.Email, &p.MobilePhone, &p.Location,
		&bloodType, &dob, &gender, &ecName, &ecPhone, &ecRel,
		&p.MedicalHistory, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.ID, err = parseRowID(rawID); err != nil {
		return nil, err
	}
	if p.User, err = parseRowID(rawUser); err != nil {
		return nil, err
	}

	p.BloodType = bloodType.String
	p.Gender = gender.String
	if dob.Valid {
		t := dob.Time
		p.DateOfBirth = &t
	}
	if ecName.Valid || ecPhone.Valid || ecRel.Valid {
		p.EmergencyContact = &model.EmergencyContact{
			Name:         ecName.String,
			Phone:        ecPhone.String,
			Relationship: ecRel.String,
		}
	}
	return p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func contactColumns(c *model.EmergencyContact) (name, phone, relationship sql.NullString) {
	if c == nil {
		return
	}
	return sql.NullString{String: c.Name, Valid: true},
		sql.NullString{String: c.Phone, Valid: true},
		sql.NullString{String: c.Relationship, Valid: true}
}
