// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: routing/v1/routing.proto

package routingv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
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

type LatLng struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Lat           float64                `protobuf:"fixed64,1,opt,name=lat,proto3" json:"lat,omitempty"`
	Lng           float64                `protobuf:"fixed64,2,opt,name=lng,proto3" json:"lng,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *LatLng) Reset() {
	*x = LatLng{}
	mi := &file_routing_v1_routing_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *LatLng) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*LatLng) ProtoMessage() {}

func (x *LatLng) ProtoReflect() protoreflect.Message {
	mi := &file_routing_v1_routing_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use LatLng.ProtoReflect.Descriptor instead.
func (*LatLng) Descriptor() ([]byte, []int) {
	return file_routing_v1_routing_proto_rawDescGZIP(), []int{0}
}

func (x *LatLng) GetLat() float64 {
	if x != nil {
		return x.Lat
	}
	return 0
}

func (x *LatLng) GetLng() float64 {
	if x != nil {
		return x.Lng
	}
	return 0
}

type TravelDurationRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Origin        *LatLng                `protobuf:"bytes,1,opt,name=origin,proto3" json:"origin,omitempty"`
	Destination   *LatLng                `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *TravelDurationRequest) Reset() {
	*x = TravelDurationRequest{}
	mi := &file_routing_v1_routing_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *TravelDurationRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*TravelDurationRequest) ProtoMessage() {}

func (x *TravelDurationRequest) ProtoReflect() protoreflect.Message {
	mi := &file_routing_v1_routing_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use TravelDurationRequest.ProtoReflect.Descriptor instead.
func (*TravelDurationRequest) Descriptor() ([]byte, []int) {
	return file_routing_v1_routing_proto_rawDescGZIP(), []int{1}
}

func (x *TravelDurationRequest) GetOrigin() *LatLng {
	if x != nil {
		return x.Origin
	}
	return nil
}

func (x *TravelDurationRequest) GetDestination() *LatLng {
	if x != nil {
		return x.Destination
	}
	return nil
}

type TravelDurationResponse struct {
	state           protoimpl.MessageState `protogen:"open.v1"`
	DurationSeconds int64                  `protobuf:"varint,1,opt,name=duration_seconds,json=durationSeconds,proto3" json:"duration_seconds,omitempty"`
	unknownFields   protoimpl.UnknownFields
	sizeCache       protoimpl.SizeCache
}

func (x *TravelDurationResponse) Reset() {
	*x = TravelDurationResponse{}
	mi := &file_routing_v1_routing_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *TravelDurationResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*TravelDurationResponse) ProtoMessage() {}

func (x *TravelDurationResponse) ProtoReflect() protoreflect.Message {
	mi := &file_routing_v1_routing_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use TravelDurationResponse.ProtoReflect.Descriptor instead.
func (*TravelDurationResponse) Descriptor() ([]byte, []int) {
	return file_routing_v1_routing_proto_rawDescGZIP(), []int{2}
}

func (x *TravelDurationResponse) GetDurationSeconds() int64 {
	if x != nil {
		return x.DurationSeconds
	}
	return 0
}

var File_routing_v1_routing_proto protoreflect.FileDescriptor

const file_routing_v1_routing_proto_rawDesc = "" +
	"\n" +
	"\x18routing/v1/routing.proto\x12\n" +
	"routing.v1\",\n" +
	"\x06LatLng\x12\x10\n" +
	"\x03lat\x18\x01 \x01(\x01R\x03lat\x12\x10\n" +
	"\x03lng\x18\x02 \x01(\x01R\x03lng\"y\n" +
	"\x15TravelDurationRequest\x12*\n" +
	"\x06origin\x18\x01 \x01(\v2\x12.routing.v1.LatLngR\x06origin\x124\n" +
	"\vdestination\x18\x02 \x01(\v2\x12.routing.v1.LatLngR\vdestination\"C\n" +
	"\x16TravelDurationResponse\x12)\n" +
	"\x10duration_seconds\x18\x01 \x01(\x03R\x0fdurationSeconds2l\n" +
	"\x0eRoutingService\x12Z\n" +
	"\x11GetTravelDuration\x12!.routing.v1.TravelDurationRequest\x1a\".routing.v1.TravelDurationResponseBBZ@github.com/chefbook-app/chefbook/protos/gen/routing/v1;routingv1b\x06proto3"

var (
	file_routing_v1_routing_proto_rawDescOnce sync.Once
	file_routing_v1_routing_proto_rawDescData []byte
)

func file_routing_v1_routing_proto_rawDescGZIP() []byte {
	file_routing_v1_routing_proto_rawDescOnce.Do(func() {
		file_routing_v1_routing_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_routing_v1_routing_proto_rawDesc), len(file_routing_v1_routing_proto_rawDesc)))
	})
	return file_routing_v1_routing_proto_rawDescData
}

var file_routing_v1_routing_proto_msgTypes = make([]protoimpl.MessageInfo, 3)
var file_routing_v1_routing_proto_goTypes = []any{
	(*LatLng)(nil),                 // 0: routing.v1.LatLng
	(*TravelDurationRequest)(nil),  // 1: routing.v1.TravelDurationRequest
	(*TravelDurationResponse)(nil), // 2: routing.v1.TravelDurationResponse
}
var file_routing_v1_routing_proto_depIdxs = []int32{
	0, // 0: routing.v1.TravelDurationRequest.origin:type_name -> routing.v1.LatLng
	0, // 1: routing.v1.TravelDurationRequest.destination:type_name -> routing.v1.LatLng
	1, // 2: routing.v1.RoutingService.GetTravelDuration:input_type -> routing.v1.TravelDurationRequest
	2, // 3: routing.v1.RoutingService.GetTravelDuration:output_type -> routing.v1.TravelDurationResponse
	3, // [3:4] is the sub-list for method output_type
	2, // [2:3] is the sub-list for method input_type
	2, // [2:2] is the sub-list for extension type_name
	2, // [2:2] is the sub-list for extension extendee
	0, // [0:2] is the sub-list for field type_name
}

func init() { file_routing_v1_routing_proto_init() }
func file_routing_v1_routing_proto_init() {
	if File_routing_v1_routing_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_routing_v1_routing_proto_rawDesc), len(file_routing_v1_routing_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   3,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_routing_v1_routing_proto_goTypes,
		DependencyIndexes: file_routing_v1_routing_proto_depIdxs,
		MessageInfos:      file_routing_v1_routing_proto_msgTypes,
	}.Build()
	File_routing_v1_routing_proto = out.File
	file_routing_v1_routing_proto_goTypes = nil
	file_routing_v1_routing_proto_depIdxs = nil
}
