package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"utsavdarshan/internal/models"
	"utsavdarshan/pkg/location"

	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Importer loads and dumps pandals as GeoJSON FeatureCollections.
type Importer struct {
	dir *DirectoryService
}

func NewImporter(dir *DirectoryService) *Importer {
	return &Importer{dir: dir}
}

type ImportSkip struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type ImportReport struct {
	Inserted int          `json:"inserted"`
	Skipped  []ImportSkip `json:"skipped"`
}

// Import inserts every feature of a FeatureCollection through CreatePandal.
// Features with a null geometry are stored without a location; non-point
// geometries and invalid features are skipped. Store failures abort.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*ImportReport, error) {
	var fc geojson.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, invalid("file", "is not a GeoJSON FeatureCollection: "+err.Error())
	}
	report := &ImportReport{Skipped: []ImportSkip{}}
	for i, f := range fc.Features {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		p, err := featureToPandal(f)
		if err != nil {
			report.Skipped = append(report.Skipped, ImportSkip{Index: i, Reason: err.Error()})
			continue
		}
		if _, err := im.dir.CreatePandal(ctx, p); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				report.Skipped = append(report.Skipped, ImportSkip{Index: i, Reason: verr.Error()})
				continue
			}
			return report, err
		}
		report.Inserted++
	}
	logrus.WithFields(logrus.Fields{
		"inserted": report.Inserted,
		"skipped":  len(report.Skipped),
	}).Info("geojson import finished")
	return report, nil
}

// Export writes every pandal as a Feature. Pandals without a location get a
// null geometry.
func (im *Importer) Export(ctx context.Context, w io.Writer) error {
	list, err := im.dir.ListPandals(ctx, 0)
	if err != nil {
		return err
	}
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(list))}
	for i := range list {
		fc.Features = append(fc.Features, pandalToFeature(&list[i]))
	}
	return json.NewEncoder(w).Encode(&fc)
}

func featureToPandal(f *geojson.Feature) (models.Pandal, error) {
	if f == nil {
		return models.Pandal{}, errors.New("empty feature")
	}
	var p models.Pandal
	if f.Geometry != nil {
		pt, err := location.FromGeom(f.Geometry)
		if err != nil {
			return models.Pandal{}, err
		}
		p.Location = &pt
	}
	props := f.Properties
	p.Name = stringProp(props, "name")
	p.Theme = stringProp(props, "theme")
	p.IdolType = stringProp(props, "idol_type")
	p.Area = stringProp(props, "area")
	p.Address = stringProp(props, "address")
	p.OpeningTime = stringProp(props, "opening_time")
	p.ClosingTime = stringProp(props, "closing_time")
	p.History = optStringProp(props, "history")
	p.FamousFor = optStringProp(props, "famous_for")
	p.ExpectedCrowd = optStringProp(props, "expected_crowd")
	p.BestTimeToVisit = optStringProp(props, "best_time_to_visit")
	p.ContactNumber = optStringProp(props, "contact_number")
	p.SpecialFeatures = listProp(props, "special_features")
	p.Facilities = listProp(props, "facilities")
	if v, ok := props["established_year"].(float64); ok {
		if v != math.Trunc(v) {
			return models.Pandal{}, fmt.Errorf("established_year %v is not a whole year", v)
		}
		y := int(v)
		p.EstablishedYear = &y
	}
	return p, nil
}

func pandalToFeature(p *models.Pandal) *geojson.Feature {
	props := map[string]interface{}{
		"name":         p.Name,
		"theme":        p.Theme,
		"idol_type":    p.IdolType,
		"area":         p.Area,
		"address":      p.Address,
		"opening_time": p.OpeningTime,
		"closing_time": p.ClosingTime,
		"created_at":   p.CreatedAt,
	}
	setOpt := func(key string, v *string) {
		if v != nil {
			props[key] = *v
		}
	}
	setOpt("history", p.History)
	setOpt("famous_for", p.FamousFor)
	setOpt("expected_crowd", p.ExpectedCrowd)
	setOpt("best_time_to_visit", p.BestTimeToVisit)
	setOpt("contact_number", p.ContactNumber)
	if p.EstablishedYear != nil {
		props["established_year"] = *p.EstablishedYear
	}
	if len(p.SpecialFeatures) > 0 {
		props["special_features"] = p.SpecialFeatures
	}
	if len(p.Facilities) > 0 {
		props["facilities"] = p.Facilities
	}
	if p.ImageURL != "" {
		props["image_url"] = p.ImageURL
	}
	props["id"] = p.ID
	f := &geojson.Feature{Properties: props}
	if p.HasLocation() {
		f.Geometry = p.Location.Geom()
	}
	return f
}

func stringProp(props map[string]interface{}, key string) string {
	s, _ := props[key].(string)
	return s
}

func optStringProp(props map[string]interface{}, key string) *string {
	s, ok := props[key].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func listProp(props map[string]interface{}, key string) []string {
	raw, ok := props[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
