package services

import (
	"sort"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"gorm.io/gorm"
)

// link tables and their columns
const (
	photoTagLinks       = "photos_tags_link"
	photoSearchTagLinks = "photos_tags_recherche_link"
	photoAlbumLinks     = "photos_albums_link"
	albumTagLinks       = "photos_albums_tags_link"
	videoTagLinks       = "videos_tags_link"
	autreTagLinks       = "autre_tags_link"

	colPhoto = "id_pho"
	colAlbum = "id_alb"
	colVideo = "id_vid"
	colAutre = "id_autre"
	colTag   = "id_tags"
)

// replaceLinks rebuilds the link rows of one owner: every existing row is
// deleted, then one row per distinct id is inserted.
func replaceLinks(tx *gorm.DB, table, ownerCol string, ownerID int, targetCol string, ids []int) error {
	if err := deleteLinks(tx, table, ownerCol, ownerID); err != nil {
		return err
	}
	return insertLinks(tx, table, ownerCol, ownerID, targetCol, ids)
}

func deleteLinks(tx *gorm.DB, table, col string, id int) error {
	return tx.Exec("DELETE FROM "+table+" WHERE "+col+" = ?", id).Error
}

func insertLinks(tx *gorm.DB, table, ownerCol string, ownerID int, targetCol string, ids []int) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	rows := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, map[string]interface{}{ownerCol: ownerID, targetCol: id})
	}
	return tx.Table(table).Create(rows).Error
}

// uniqueIDs drops non-positive and repeated ids, keeping first-seen order.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type linkedTagRow struct {
	OwnerID   int    `gorm:"column:owner_id"`
	ID        int    `gorm:"column:id_tags"`
	Titre     string `gorm:"column:titre"`
	Important bool   `gorm:"column:important"`
}

// linkedTags returns the tags of each owner, sorted by title.
func linkedTags(db *gorm.DB, linkTable, ownerCol, tagTable string, ownerIDs []int) (map[int][]models.Tag, error) {
	out := make(map[int][]models.Tag, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}

	var rows []linkedTagRow
	err := db.Table(linkTable+" AS l").
		Select("l."+ownerCol+" AS owner_id, t.id_tags, t.titre, t.important").
		Joins("JOIN "+tagTable+" AS t ON t.id_tags = l.id_tags").
		Where("l."+ownerCol+" IN ?", ownerIDs).
		Order("t.titre ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.OwnerID] = append(out[r.OwnerID], models.Tag{ID: r.ID, Titre: r.Titre, Important: r.Important})
	}
	return out, nil
}

type linkRow struct {
	OwnerID  int `gorm:"column:owner_id"`
	TargetID int `gorm:"column:target_id"`
}

// linkedIDs returns, for each owner, the ids on the other side of a link table.
func linkedIDs(db *gorm.DB, table, ownerCol, targetCol string, ownerIDs []int) (map[int][]int, error) {
	out := make(map[int][]int, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}

	var rows []linkRow
	err := db.Table(table).
		Select(ownerCol+" AS owner_id, "+targetCol+" AS target_id").
		Where(ownerCol+" IN ?", ownerIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.OwnerID] = append(out[r.OwnerID], r.TargetID)
	}
	for k := range out {
		sort.Ints(out[k])
	}
	return out, nil
}

func orEmpty(tags []models.Tag) []models.Tag {
	if tags == nil {
		return []models.Tag{}
	}
	return tags
}
