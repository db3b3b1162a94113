// Copyright 2025 Redpanda Data, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package envelope

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// encMode uses Core Deterministic Encoding, so equal results seal to equal
// bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("envelope: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("envelope: CBOR decoder initialization failed: " + err.Error())
	}
}

func marshalJSON(b body) ([]byte, error) {
	return json.Marshal(b)
}

func unmarshalJSON(data []byte, b *body) error {
	return json.Unmarshal(data, b)
}

func marshalCBOR(b body) ([]byte, error) {
	return encMode.Marshal(b)
}

func unmarshalCBOR(data []byte, b *body) error {
	return decMode.Unmarshal(data, b)
}

// The proto body is a google.protobuf.Struct with the same field names as the
// JSON body. The checksum travels as a decimal string since Struct numbers are
// doubles.
func marshalProto(b body) ([]byte, error) {
	fields := make(map[string]*structpb.Value, 4)
	if b.EncodedText != nil {
		fields["encodedText"] = structpb.NewStringValue(*b.EncodedText)
		fields["checksum"] = structpb.NewStringValue(strconv.FormatUint(b.Checksum, 10))
	}
	if b.KeyShortForms != nil {
		fields["keyShortForms"] = structpb.NewStructValue(stringStruct(*b.KeyShortForms))
	}
	if b.ReplaceLongStringsTable != nil {
		fields["replaceLongStringsTable"] = structpb.NewStructValue(stringStruct(*b.ReplaceLongStringsTable))
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(&structpb.Struct{Fields: fields})
}

func unmarshalProto(data []byte, b *body) error {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return err
	}
	if v, ok := st.Fields["encodedText"]; ok {
		text, err := stringOf("encodedText", v)
		if err != nil {
			return err
		}
		b.EncodedText = &text
	}
	if v, ok := st.Fields["checksum"]; ok {
		s, err := stringOf("checksum", v)
		if err != nil {
			return err
		}
		if b.Checksum, err = strconv.ParseUint(s, 10, 64); err != nil {
			return fmt.Errorf("checksum: %w", err)
		}
	}
	for name, dst := range map[string]**map[string]string{
		"keyShortForms":           &b.KeyShortForms,
		"replaceLongStringsTable": &b.ReplaceLongStringsTable,
	} {
		v, ok := st.Fields[name]
		if !ok {
			continue
		}
		m, err := stringMap(name, v)
		if err != nil {
			return err
		}
		*dst = &m
	}
	return nil
}

func stringStruct(m map[string]string) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(m))
	for k, v := range m {
		fields[k] = structpb.NewStringValue(v)
	}
	return &structpb.Struct{Fields: fields}
}

func stringOf(field string, v *structpb.Value) (string, error) {
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s: expected a string", field)
	}
	return s.StringValue, nil
}

func stringMap(field string, v *structpb.Value) (map[string]string, error) {
	st := v.GetStructValue()
	if st == nil {
		return nil, fmt.Errorf("%s: expected a struct", field)
	}
	m := make(map[string]string, len(st.GetFields()))
	for k, fv := range st.GetFields() {
		s, err := stringOf(field+"."+k, fv)
		if err != nil {
			return nil, err
		}
		m[k] = s
	}
	return m, nil
}
