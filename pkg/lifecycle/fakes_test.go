package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/younsl/ebsreaper/internal/models"
)

var errBoom = errors.New("boom")

// fakeProvider keeps volumes in memory and applies tag writes and deletes to them
type fakeProvider struct {
	volumes   []models.ListedVolume
	tagWrites []string
	deleted   []string
	failTag   string
	failDel   string
	listErr   error
}

func newFakeProvider(volumes ...models.ListedVolume) *fakeProvider {
	return &fakeProvider{volumes: volumes}
}

func volume(id string, size int, tags map[string]string) models.ListedVolume {
	if tags == nil {
		tags = map[string]string{}
	}
	return models.ListedVolume{
		VolumeRecord: models.VolumeRecord{ID: id, Status: "available", Size: size, VolumeType: "gp3", Region: "us-east-1"},
		Tags:         tags,
	}
}

func (f *fakeProvider) ListAvailableVolumes(ctx context.Context) ([]models.ListedVolume, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.ListedVolume, 0, len(f.volumes))
	for _, v := range f.volumes {
		tags := make(map[string]string, len(v.Tags))
		for k, val := range v.Tags {
			tags[k] = val
		}
		v.Tags = tags
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeProvider) SetTag(ctx context.Context, volumeID, key, value string) error {
	if volumeID == f.failTag {
		return errBoom
	}
	for i := range f.volumes {
		if f.volumes[i].ID == volumeID {
			f.volumes[i].Tags[key] = value
		}
	}
	f.tagWrites = append(f.tagWrites, fmt.Sprintf("%s=%s", volumeID, value))
	return nil
}

func (f *fakeProvider) DeleteVolume(ctx context.Context, volumeID string) error {
	if volumeID == f.failDel {
		return errBoom
	}
	kept := f.volumes[:0]
	for _, v := range f.volumes {
		if v.ID != volumeID {
			kept = append(kept, v)
		}
	}
	f.volumes = kept
	f.deleted = append(f.deleted, volumeID)
	return nil
}

// fakeParams is an in-memory parameter store
type fakeParams struct {
	values  map[string]string
	getErr  error
	deletes []string
	// failDeleteOnce fails the next delete of that name, then clears itself
	failDeleteOnce string
	failPut        string
}

func newFakeParams() *fakeParams {
	return &fakeParams{values: map[string]string{}}
}

func (f *fakeParams) Get(ctx context.Context, name string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[name]
	return v, ok, nil
}

func (f *fakeParams) Put(ctx context.Context, name, value, description string) error {
	if name == f.failPut {
		return errBoom
	}
	f.values[name] = value
	return nil
}

func (f *fakeParams) Delete(ctx context.Context, name string) error {
	if name == f.failDeleteOnce {
		f.failDeleteOnce = ""
		return errBoom
	}
	delete(f.values, name)
	f.deletes = append(f.deletes, name)
	return nil
}

type comment struct {
	issueID string
	body    string
}

// fakeIssues records tickets and comments
type fakeIssues struct {
	created    []Ticket
	comments   []comment
	createErr  error
	commentErr error
	nextID     int
}

func (f *fakeIssues) CreateIssue(ctx context.Context, ticket Ticket) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, ticket)
	f.nextID++
	return fmt.Sprintf("SD-%d", f.nextID), nil
}

func (f *fakeIssues) AddComment(ctx context.Context, issueID, body string) error {
	if f.commentErr != nil {
		return f.commentErr
	}
	f.comments = append(f.comments, comment{issueID: issueID, body: body})
	return nil
}

type fakeMetrics struct {
	published []RunMetrics
	err       error
}

func (f *fakeMetrics) Publish(ctx context.Context, account string, m RunMetrics) error {
	f.published = append(f.published, m)
	return f.err
}

type fakeArchiver struct {
	keys   []string
	bodies []string
}

func (f *fakeArchiver) Archive(ctx context.Context, key, body string) error {
	f.keys = append(f.keys, key)
	f.bodies = append(f.bodies, body)
	return nil
}

type fixedEstimator float64

func (e fixedEstimator) MonthlyCost(volumeType string, sizeGB int, region string) (float64, string) {
	return float64(e) * float64(sizeGB), "Default"
}
