package domain

import "time"

// Visitor is a person who may be granted time-boxed access by a
// resident. The document is immutable after creation.
type Visitor struct {
	id        string
	name      VisitorName
	document  Document
	plate     VehiclePlate
	createdAt time.Time
	updatedAt time.Time
}

func NewVisitor(name VisitorName, document Document, plate VehiclePlate) *Visitor {
	now := time.Now()
	return &Visitor{
		id:        NewID(),
		name:      name,
		document:  document,
		plate:     plate,
		createdAt: now,
		updatedAt: now,
	}
}

func RestoreVisitor(id string, name VisitorName, document Document, plate VehiclePlate, createdAt, updatedAt time.Time) *Visitor {
	return &Visitor{
		id:        id,
		name:      name,
		document:  document,
		plate:     plate,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (v *Visitor) ID() string                 { return v.id }
func (v *Visitor) Name() VisitorName          { return v.name }
func (v *Visitor) Document() Document         { return v.document }
func (v *Visitor) VehiclePlate() VehiclePlate { return v.plate }
func (v *Visitor) CreatedAt() time.Time       { return v.createdAt }
func (v *Visitor) UpdatedAt() time.Time       { return v.updatedAt }

func (v *Visitor) Equals(other *Visitor) bool {
	return other != nil && v.id == other.id
}

func (v *Visitor) UpdateName(name VisitorName) {
	v.name = name
	v.touch()
}

func (v *Visitor) UpdateVehiclePlate(plate VehiclePlate) {
	v.plate = plate
	v.touch()
}

func (v *Visitor) touch() {
	v.updatedAt = time.Now()
}
