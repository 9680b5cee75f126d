// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: availability/v1/availability.proto

package availabilityv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	timestamppb "google.golang.org/protobuf/types/known/timestamppb"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type SlotsRequest struct {
	state  protoimpl.MessageState `protogen:"open.v1"`
	ChefId string                 `protobuf:"bytes,1,opt,name=chef_id,json=chefId,proto3" json:"chef_id,omitempty"`
	// Calendar date in YYYY-MM-DD, interpreted in UTC.
	Date               string `protobuf:"bytes,2,opt,name=date,proto3" json:"date,omitempty"`
	MinDurationMinutes int32  `protobuf:"varint,3,opt,name=min_duration_minutes,json=minDurationMinutes,proto3" json:"min_duration_minutes,omitempty"`
	unknownFields      protoimpl.UnknownFields
	sizeCache          protoimpl.SizeCache
}

func (x *SlotsRequest) Reset() {
	*x = SlotsRequest{}
	mi := &file_availability_v1_availability_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SlotsRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SlotsRequest) ProtoMessage() {}

func (x *SlotsRequest) ProtoReflect() protoreflect.Message {
	mi := &file_availability_v1_availability_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SlotsRequest.ProtoReflect.Descriptor instead.
func (*SlotsRequest) Descriptor() ([]byte, []int) {
	return file_availability_v1_availability_proto_rawDescGZIP(), []int{0}
}

func (x *SlotsRequest) GetChefId() string {
	if x != nil {
		return x.ChefId
	}
	return ""
}

func (x *SlotsRequest) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

func (x *SlotsRequest) GetMinDurationMinutes() int32 {
	if x != nil {
		return x.MinDurationMinutes
	}
	return 0
}

type SlotsResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Slots         []*TimeSlot            `protobuf:"bytes,1,rep,name=slots,proto3" json:"slots,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *SlotsResponse) Reset() {
	*x = SlotsResponse{}
	mi := &file_availability_v1_availability_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SlotsResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SlotsResponse) ProtoMessage() {}

func (x *SlotsResponse) ProtoReflect() protoreflect.Message {
	mi := &file_availability_v1_availability_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SlotsResponse.ProtoReflect.Descriptor instead.
func (*SlotsResponse) Descriptor() ([]byte, []int) {
	return file_availability_v1_availability_proto_rawDescGZIP(), []int{1}
}

func (x *SlotsResponse) GetSlots() []*TimeSlot {
	if x != nil {
		return x.Slots
	}
	return nil
}

type TimeSlot struct {
	state           protoimpl.MessageState `protogen:"open.v1"`
	ChefId          string                 `protobuf:"bytes,1,opt,name=chef_id,json=chefId,proto3" json:"chef_id,omitempty"`
	ChefName        string                 `protobuf:"bytes,2,opt,name=chef_name,json=chefName,proto3" json:"chef_name,omitempty"`
	Date            string                 `protobuf:"bytes,3,opt,name=date,proto3" json:"date,omitempty"`
	StartUtc        *timestamppb.Timestamp `protobuf:"bytes,4,opt,name=start_utc,json=startUtc,proto3" json:"start_utc,omitempty"`
	EndUtc          *timestamppb.Timestamp `protobuf:"bytes,5,opt,name=end_utc,json=endUtc,proto3" json:"end_utc,omitempty"`
	DurationMinutes int32                  `protobuf:"varint,6,opt,name=duration_minutes,json=durationMinutes,proto3" json:"duration_minutes,omitempty"`
	Note            string                 `protobuf:"bytes,7,opt,name=note,proto3" json:"note,omitempty"`
	unknownFields   protoimpl.UnknownFields
	sizeCache       protoimpl.SizeCache
}

func (x *TimeSlot) Reset() {
	*x = TimeSlot{}
	mi := &file_availability_v1_availability_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *TimeSlot) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*TimeSlot) ProtoMessage() {}

func (x *TimeSlot) ProtoReflect() protoreflect.Message {
	mi := &file_availability_v1_availability_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use TimeSlot.ProtoReflect.Descriptor instead.
func (*TimeSlot) Descriptor() ([]byte, []int) {
	return file_availability_v1_availability_proto_rawDescGZIP(), []int{2}
}

func (x *TimeSlot) GetChefId() string {
	if x != nil {
		return x.ChefId
	}
	return ""
}

func (x *TimeSlot) GetChefName() string {
	if x != nil {
		return x.ChefName
	}
	return ""
}

func (x *TimeSlot) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

func (x *TimeSlot) GetStartUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.StartUtc
	}
	return nil
}

func (x *TimeSlot) GetEndUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.EndUtc
	}
	return nil
}

func (x *TimeSlot) GetDurationMinutes() int32 {
	if x != nil {
		return x.DurationMinutes
	}
	return 0
}

func (x *TimeSlot) GetNote() string {
	if x != nil {
		return x.Note
	}
	return ""
}

type CheckRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	ChefId        string                 `protobuf:"bytes,1,opt,name=chef_id,json=chefId,proto3" json:"chef_id,omitempty"`
	StartUtc      *timestamppb.Timestamp `protobuf:"bytes,2,opt,name=start_utc,json=startUtc,proto3" json:"start_utc,omitempty"`
	EndUtc        *timestamppb.Timestamp `protobuf:"bytes,3,opt,name=end_utc,json=endUtc,proto3" json:"end_utc,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *CheckRequest) Reset() {
	*x = CheckRequest{}
	mi := &file_availability_v1_availability_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *CheckRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*CheckRequest) ProtoMessage() {}

func (x *CheckRequest) ProtoReflect() protoreflect.Message {
	mi := &file_availability_v1_availability_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use CheckRequest.ProtoReflect.Descriptor instead.
func (*CheckRequest) Descriptor() ([]byte, []int) {
	return file_availability_v1_availability_proto_rawDescGZIP(), []int{3}
}

func (x *CheckRequest) GetChefId() string {
	if x != nil {
		return x.ChefId
	}
	return ""
}

func (x *CheckRequest) GetStartUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.StartUtc
	}
	return nil
}

func (x *CheckRequest) GetEndUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.EndUtc
	}
	return nil
}

type CheckResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Available     bool                   `protobuf:"varint,1,opt,name=available,proto3" json:"available,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *CheckResponse) Reset() {
	*x = CheckResponse{}
	mi := &file_availability_v1_availability_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *CheckResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*CheckResponse) ProtoMessage() {}

func (x *CheckResponse) ProtoReflect() protoreflect.Message {
	mi := &file_availability_v1_availability_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use CheckResponse.ProtoReflect.Descriptor instead.
func (*CheckResponse) Descriptor() ([]byte, []int) {
	return file_availability_v1_availability_proto_rawDescGZIP(), []int{4}
}

func (x *CheckResponse) GetAvailable() bool {
	if x != nil {
		return x.Available
	}
	return false
}

var File_availability_v1_availability_proto protoreflect.FileDescriptor

const file_availability_v1_availability_proto_rawDesc = "" +
	"\n" +
	"\"availability/v1/availability.proto\x12\x0favailability.v1\x1a\x1fgoogle/protobuf/timestamp.proto\"m\n" +
	"\fSlotsRequest\x12\x17\n" +
	"\achef_id\x18\x01 \x01(\tR\x06chefId\x12\x12\n" +
	"\x04date\x18\x02 \x01(\tR\x04date\x120\n" +
	"\x14min_duration_minutes\x18\x03 \x01(\x05R\x12minDurationMinutes\"@\n" +
	"\rSlotsResponse\x12/\n" +
	"\x05slots\x18\x01 \x03(\v2\x19.availability.v1.TimeSlotR\x05slots\"\x81\x02\n" +
	"\bTimeSlot\x12\x17\n" +
	"\achef_id\x18\x01 \x01(\tR\x06chefId\x12\x1b\n" +
	"\tchef_name\x18\x02 \x01(\tR\bchefName\x12\x12\n" +
	"\x04date\x18\x03 \x01(\tR\x04date\x127\n" +
	"\tstart_utc\x18\x04 \x01(\v2\x1a.google.protobuf.TimestampR\bstartUtc\x123\n" +
	"\aend_utc\x18\x05 \x01(\v2\x1a.google.protobuf.TimestampR\x06endUtc\x12)\n" +
	"\x10duration_minutes\x18\x06 \x01(\x05R\x0fdurationMinutes\x12\x12\n" +
	"\x04note\x18\a \x01(\tR\x04note\"\x95\x01\n" +
	"\fCheckRequest\x12\x17\n" +
	"\achef_id\x18\x01 \x01(\tR\x06chefId\x127\n" +
	"\tstart_utc\x18\x02 \x01(\v2\x1a.google.protobuf.TimestampR\bstartUtc\x123\n" +
	"\aend_utc\x18\x03 \x01(\v2\x1a.google.protobuf.TimestampR\x06endUtc\"-\n" +
	"\rCheckResponse\x12\x1c\n" +
	"\tavailable\x18\x01 \x01(\bR\tavailable2\xb4\x01\n" +
	"\x13AvailabilityService\x12I\n" +
	"\bGetSlots\x12\x1d.availability.v1.SlotsRequest\x1a\x1e.availability.v1.SlotsResponse\x12R\n" +
	"\x11CheckAvailability\x12\x1d.availability.v1.CheckRequest\x1a\x1e.availability.v1.CheckResponseBLZJgithub.com/chefbook-app/chefbook/protos/gen/availability/v1;availabilityv1b\x06proto3"

var (
	file_availability_v1_availability_proto_rawDescOnce sync.Once
	file_availability_v1_availability_proto_rawDescData []byte
)

func file_availability_v1_availability_proto_rawDescGZIP() []byte {
	file_availability_v1_availability_proto_rawDescOnce.Do(func() {
		file_availability_v1_availability_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_availability_v1_availability_proto_rawDesc), len(file_availability_v1_availability_proto_rawDesc)))
	})
	return file_availability_v1_availability_proto_rawDescData
}

var file_availability_v1_availability_proto_msgTypes = make([]protoimpl.MessageInfo, 5)
var file_availability_v1_availability_proto_goTypes = []any{
	(*SlotsRequest)(nil),          // 0: availability.v1.SlotsRequest
	(*SlotsResponse)(nil),         // 1: availability.v1.SlotsResponse
	(*TimeSlot)(nil),              // 2: availability.v1.TimeSlot
	(*CheckRequest)(nil),          // 3: availability.v1.CheckRequest
	(*CheckResponse)(nil),         // 4: availability.v1.CheckResponse
	(*timestamppb.Timestamp)(nil), // 5: google.protobuf.Timestamp
}
var file_availability_v1_availability_proto_depIdxs = []int32{
	2, // 0: availability.v1.SlotsResponse.slots:type_name -> availability.v1.TimeSlot
	5, // 1: availability.v1.TimeSlot.start_utc:type_name -> google.protobuf.Timestamp
	5, // 2: availability.v1.TimeSlot.end_utc:type_name -> google.protobuf.Timestamp
	5, // 3: availability.v1.CheckRequest.start_utc:type_name -> google.protobuf.Timestamp
	5, // 4: availability.v1.CheckRequest.end_utc:type_name -> google.protobuf.Timestamp
	0, // 5: availability.v1.AvailabilityService.GetSlots:input_type -> availability.v1.SlotsRequest
	3, // 6: availability.v1.AvailabilityService.CheckAvailability:input_type -> availability.v1.CheckRequest
	1, // 7: availability.v1.AvailabilityService.GetSlots:output_type -> availability.v1.SlotsResponse
	4, // 8: availability.v1.AvailabilityService.CheckAvailability:output_type -> availability.v1.CheckResponse
	7, // [7:9] is the sub-list for method output_type
	5, // [5:7] is the sub-list for method input_type
	5, // [5:5] is the sub-list for extension type_name
	5, // [5:5] is the sub-list for extension extendee
	0, // [0:5] is the sub-list for field type_name
}

func init() { file_availability_v1_availability_proto_init() }
func file_availability_v1_availability_proto_init() {
	if File_availability_v1_availability_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_availability_v1_availability_proto_rawDesc), len(file_availability_v1_availability_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   5,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_availability_v1_availability_proto_goTypes,
		DependencyIndexes: file_availability_v1_availability_proto_depIdxs,
		MessageInfos:      file_availability_v1_availability_proto_msgTypes,
	}.Build()
	File_availability_v1_availability_proto = out.File
	file_availability_v1_availability_proto_goTypes = nil
	file_availability_v1_availability_proto_depIdxs = nil
}
