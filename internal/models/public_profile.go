package models

import "github.com/jackc/pgx/v5"

// PublicProfile holds the counterpart fields shown next to a mentorship.
// The profile collaborator owns the data; it is passed through untouched.
type PublicProfile struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	PictureURL string `json:"pictureUrl"`
	Position   string `json:"position"`
	Company    string `json:"company"`
}

// ScanPublicProfile expects columns: user_id, name, picture_url, position, company
func ScanPublicProfile(row pgx.Row) (*PublicProfile, error) {
	var p PublicProfile
	if err := row.Scan(&p.UserID, &p.Name, &p.PictureURL, &p.Position, &p.Company); err != nil {
		return nil, err
	}
	return &p, nil
}
