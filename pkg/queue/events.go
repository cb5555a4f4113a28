package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishFileUploaded 发布 cv.file.uploaded 事件.
// 在文件字节写入对象存储且元数据落库后调用，通知下游流程（审计、缓存失效等）.
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息.
func PublishFileUploaded(pub message.Publisher, payload FileUploadedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileUploaded, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFileUploaded, msg)
}

// PublishFileDeleted 发布 cv.file.deleted 事件.
func PublishFileDeleted(pub message.Publisher, payload FileDeletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileDeleted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFileDeleted, msg)
}

// PublishFolderDeleted 发布 cv.folder.deleted 事件.
func PublishFolderDeleted(pub message.Publisher, payload FolderDeletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFolderDeleted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFolderDeleted, msg)
}

// PublishActivityRecorded 发布 cv.activity.recorded 事件.
func PublishActivityRecorded(pub message.Publisher, payload ActivityRecordedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicActivityRecorded, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicActivityRecorded, msg)
}

// ParseFileUploaded 将 Watermill 消息解析为强类型 Envelope（FileUploadedPayload）.
func ParseFileUploaded(msg *message.Message) (Message[FileUploadedPayload], error) {
	return ParseWatermillMessage[FileUploadedPayload](msg)
}

// ParseActivityRecorded 将 Watermill 消息解析为强类型 Envelope（ActivityRecordedPayload）.
func ParseActivityRecorded(msg *message.Message) (Message[ActivityRecordedPayload], error) {
	return ParseWatermillMessage[ActivityRecordedPayload](msg)
}
