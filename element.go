package gr2

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Kind tags which variant of ElementType is populated. This is a closed
// sum: every variant is produced by one or more on-wire type_ids (or, for
// KindArray, by the array_size>0 wrapper around them), dispatch is always
// by type_id, and no external package can add a new Kind.
type Kind int

const (
	KindReference Kind = iota
	KindArrayOfReferences
	KindVariantReference
	KindString
	KindF32
	KindI32
	KindU8
	KindTransform
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindReference:
		return "Reference"
	case KindArrayOfReferences:
		return "ArrayOfReferences"
	case KindVariantReference:
		return "VariantReference"
	case KindString:
		return "String"
	case KindF32:
		return "F32"
	case KindI32:
		return "I32"
	case KindU8:
		return "U8"
	case KindTransform:
		return "Transform"
	case KindArray:
		return "Array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Transform is the 68-byte affine-transform record produced by type_id 9.
type Transform struct {
	Flags       uint32
	Translation [3]float32
	Rotation    [4]float32
	ScaleShear  [3][3]float32
}

// ElementType is a tagged union over every value an element can hold.
// Exactly one field is meaningful, selected by Kind.
type ElementType struct {
	Kind Kind

	Reference         []Element
	ArrayOfReferences [][]Element
	String            string
	F32               float32
	I32               int32
	U8                uint8
	Transform         Transform
	Array             []ElementType
}

// Element is a named field: the unit of the decoded tree.
type Element struct {
	Name  string
	Value ElementType
}

const transformSize = 4 + 3*4 + 4*4 + 9*4 // flags + translation + rotation + scale_shear = 68

type decoder struct {
	sectors  []Sector
	order    binary.ByteOrder
	is64Bit  bool
	maxDepth int
}

func (c *decoder) ptrWidth() uint32 { return uint32(ptrSize(c.is64Bit)) }

// decodeString reads the null-terminated UTF-8 string at (sector, offset).
func (c *decoder) decodeString(sector, offset uint32) (string, error) {
	const op = "string"
	if err := checkOffset(op, c.sectors, sector, offset); err != nil {
		return "", err
	}
	data := c.sectors[sector].Data
	end := offset
	for int(end) < len(data) && data[end] != 0 {
		end++
	}
	if int(end) >= len(data) {
		return "", fail(op, ErrShortInput, "unterminated string")
	}
	raw := data[offset:end]
	if !utf8.Valid(raw) {
		return "", fail(op, ErrInvalidUTF8, "")
	}
	return string(raw), nil
}

// decodeElementList walks the type stream starting at (typeSector,
// typeOffset) and the data stream starting at (dataSector, dataOffset)
// in lockstep, per §4.6. It returns the decoded elements and the data
// cursor's final absolute offset within dataSector — callers decoding
// type_id 3 or 7 use that cursor to chain consecutive sublist parses
// within the same destination sector.
func (c *decoder) decodeElementList(dataSector, typeSector, dataOffset, typeOffset uint32, depth int) ([]Element, uint32, error) {
	const op = "element"
	if depth > c.maxDepth {
		return nil, 0, fail(op, ErrRecursionLimit, fmt.Sprintf("depth exceeds %d", c.maxDepth))
	}
	if err := checkSector(op, dataSector, c.sectors); err != nil {
		return nil, 0, err
	}
	if err := checkSector(op, typeSector, c.sectors); err != nil {
		return nil, 0, err
	}

	typeCursor := typeOffset
	dataCursor := dataOffset
	recLen := uint32(typeInfoSize(c.is64Bit))

	var elements []Element
	for {
		ts := &c.sectors[typeSector]
		ti, err := parseTypeInfo(c.order, c.is64Bit, ts, typeCursor)
		if err != nil {
			return nil, 0, err
		}
		if isTerminator(ti.TypeID) {
			break
		}

		name := ""
		if ti.NamePtr != nil {
			name, err = c.decodeString(ti.NamePtr.DstSector, ti.NamePtr.DstOffset)
			if err != nil {
				return nil, 0, err
			}
		}

		var value ElementType
		if ti.ArraySize > 0 {
			items := make([]ElementType, 0, ti.ArraySize)
			for i := int32(0); i < ti.ArraySize; i++ {
				var v ElementType
				v, dataCursor, err = c.decodeValue(dataSector, dataCursor, ti, depth)
				if err != nil {
					return nil, 0, err
				}
				items = append(items, v)
			}
			value = ElementType{Kind: KindArray, Array: items}
		} else {
			value, dataCursor, err = c.decodeValue(dataSector, dataCursor, ti, depth)
			if err != nil {
				return nil, 0, err
			}
		}

		elements = append(elements, Element{Name: name, Value: value})
		typeCursor += recLen
	}

	return elements, dataCursor, nil
}

// decodeValue decodes the single value described by ti, starting at
// absolute offset cursor in sectors[dataSector].Data, and returns the
// value along with the cursor's new position in that same sector.
func (c *decoder) decodeValue(dataSector, cursor uint32, ti TypeInfo, depth int) (ElementType, uint32, error) {
	const op = "element_value"
	ds := &c.sectors[dataSector]
	pw := c.ptrWidth()

	readBytes := func(n uint32) ([]byte, error) {
		if uint64(cursor)+uint64(n) > uint64(len(ds.Data)) {
			return nil, fail(op, ErrShortInput, fmt.Sprintf("need %d bytes at %d, sector has %d", n, cursor, len(ds.Data)))
		}
		return ds.Data[cursor : cursor+n], nil
	}

	switch ti.TypeID {
	case 1: // opaque reference
		return ElementType{Kind: KindVariantReference}, cursor, nil

	case 2: // reference to a structure
		pos := cursor
		newCursor := cursor + pw
		if _, err := readBytes(pw); err != nil {
			return ElementType{}, 0, err
		}
		ptr, ok := ds.resolve(pos)
		var children []Element
		if ok {
			if ti.ChildrenPtr == nil {
				return ElementType{}, 0, fail(op, ErrMissingFixup, "type_id 2: resolved data pointer but no children type")
			}
			var err error
			children, _, err = c.decodeElementList(ptr.DstSector, ti.ChildrenPtr.DstSector, ptr.DstOffset, ti.ChildrenPtr.DstOffset, depth+1)
			if err != nil {
				return ElementType{}, 0, err
			}
		}
		return ElementType{Kind: KindReference, Reference: children}, newCursor, nil

	case 3: // inline-counted reference (size, pointer)
		if _, err := readBytes(4); err != nil {
			return ElementType{}, 0, err
		}
		size := readU32(c.order, ds.Data[cursor:cursor+4])
		ptrOff := cursor + 4
		newCursor := ptrOff + pw
		if _, err := readBytes(4 + pw); err != nil {
			return ElementType{}, 0, err
		}
		ptr, ok := ds.resolve(ptrOff)
		var elements []Element
		if size > 0 && ok {
			if ti.ChildrenPtr == nil {
				return ElementType{}, 0, fail(op, ErrMissingFixup, "type_id 3: resolved data pointer but no children type")
			}
			destSector := ptr.DstSector
			offset := ptr.DstOffset
			for i := uint32(0); i < size; i++ {
				var sub []Element
				var err error
				sub, offset, err = c.decodeElementList(destSector, ti.ChildrenPtr.DstSector, offset, ti.ChildrenPtr.DstOffset, depth+1)
				if err != nil {
					return ElementType{}, 0, err
				}
				elements = append(elements, sub...)
			}
		}
		return ElementType{Kind: KindReference, Reference: elements}, newCursor, nil

	case 4: // array of references (indirect)
		if _, err := readBytes(4); err != nil {
			return ElementType{}, 0, err
		}
		size := readU32(c.order, ds.Data[cursor:cursor+4])
		ptrOff := cursor + 4
		newCursor := ptrOff + pw
		if _, err := readBytes(4 + pw); err != nil {
			return ElementType{}, 0, err
		}
		ptr, ok := ds.resolve(ptrOff)
		var refs [][]Element
		if ok {
			if ti.ChildrenPtr == nil {
				return ElementType{}, 0, fail(op, ErrMissingFixup, "type_id 4: resolved data pointer but no children type")
			}
			if err := checkSector(op, ptr.DstSector, c.sectors); err != nil {
				return ElementType{}, 0, err
			}
			elemSector := &c.sectors[ptr.DstSector]
			refs = make([][]Element, 0, size)
			for i := uint32(0); i < size; i++ {
				elemOffset := ptr.DstOffset + i*pw
				elemPtr, ok2 := elemSector.resolve(elemOffset)
				if !ok2 {
					return ElementType{}, 0, fail(op, ErrMissingFixup, fmt.Sprintf("type_id 4: element %d has no fixup", i))
				}
				sub, _, err := c.decodeElementList(elemPtr.DstSector, ti.ChildrenPtr.DstSector, elemPtr.DstOffset, ti.ChildrenPtr.DstOffset, depth+1)
				if err != nil {
					return ElementType{}, 0, err
				}
				refs = append(refs, sub)
			}
		}
		return ElementType{Kind: KindArrayOfReferences, ArrayOfReferences: refs}, newCursor, nil

	case 5: // variant with opaque payload
		newCursor := cursor + 2*pw
		if _, err := readBytes(2 * pw); err != nil {
			return ElementType{}, 0, err
		}
		return ElementType{Kind: KindVariantReference}, newCursor, nil

	case 7: // explicit (type_ptr, size, data_ptr) array of references
		pos := cursor
		newCursor := cursor + pw + 4 + pw
		if _, err := readBytes(pw + 4 + pw); err != nil {
			return ElementType{}, 0, err
		}
		size := readU32(c.order, ds.Data[pos+pw:pos+pw+4])
		typePtr, ok1 := ds.resolve(pos)
		dataPtr, ok2 := ds.resolve(pos + pw + 4)
		if !ok1 || !ok2 {
			return ElementType{}, 0, fail(op, ErrMissingFixup, "type_id 7: type/data pointer slot unresolved")
		}
		elements := make([][]Element, 0, size)
		offset := dataPtr.DstOffset
		for i := uint32(0); i < size; i++ {
			var sub []Element
			var err error
			sub, offset, err = c.decodeElementList(dataPtr.DstSector, typePtr.DstSector, offset, typePtr.DstOffset, depth+1)
			if err != nil {
				return ElementType{}, 0, err
			}
			elements = append(elements, sub)
		}
		return ElementType{Kind: KindArrayOfReferences, ArrayOfReferences: elements}, newCursor, nil

	case 8: // string
		pos := cursor
		newCursor := cursor + pw
		if _, err := readBytes(pw); err != nil {
			return ElementType{}, 0, err
		}
		ptr, ok := ds.resolve(pos)
		if !ok {
			return ElementType{}, 0, fail(op, ErrMissingFixup, "type_id 8: string has no fixup")
		}
		s, err := c.decodeString(ptr.DstSector, ptr.DstOffset)
		if err != nil {
			return ElementType{}, 0, err
		}
		return ElementType{Kind: KindString, String: s}, newCursor, nil

	case 9: // transform
		buf, err := readBytes(transformSize)
		if err != nil {
			return ElementType{}, 0, err
		}
		var t Transform
		t.Flags = readU32(c.order, buf[0:4])
		for i := 0; i < 3; i++ {
			t.Translation[i] = readF32(c.order, buf[4+i*4:8+i*4])
		}
		for i := 0; i < 4; i++ {
			t.Rotation[i] = readF32(c.order, buf[16+i*4:20+i*4])
		}
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				off := 32 + (row*3+col)*4
				t.ScaleShear[row][col] = readF32(c.order, buf[off:off+4])
			}
		}
		return ElementType{Kind: KindTransform, Transform: t}, cursor + transformSize, nil

	case 10: // float32
		buf, err := readBytes(4)
		if err != nil {
			return ElementType{}, 0, err
		}
		return ElementType{Kind: KindF32, F32: readF32(c.order, buf)}, cursor + 4, nil

	case 12, 14: // uint8
		buf, err := readBytes(1)
		if err != nil {
			return ElementType{}, 0, err
		}
		return ElementType{Kind: KindU8, U8: buf[0]}, cursor + 1, nil

	case 19: // int32
		buf, err := readBytes(4)
		if err != nil {
			return ElementType{}, 0, err
		}
		return ElementType{Kind: KindI32, I32: readI32(c.order, buf)}, cursor + 4, nil

	default:
		return ElementType{}, 0, fail(op, ErrUnknownTypeID, fmt.Sprintf("type_id=%d", ti.TypeID))
	}
}
