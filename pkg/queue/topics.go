// Package queue 定义消息主题常量与分组，供发布/订阅使用.
package queue

// 主题命名规范：cv.<域>.<动作>，尽量稳定且向后兼容.
// 域：file(文件目录)、folder(文件夹树)、activity(审计)、user(账户)
// 动作：过去式，表示已发生的事实(uploaded/deleted/moved/recorded)

const (
	// 文件领域.
	TopicFileUploaded   = "cv.file.uploaded"   // 文件字节已写入对象存储且元数据落库
	TopicFileDeleted    = "cv.file.deleted"    // 文件元数据删除，对象存储清理可能异步进行
	TopicFileMoved      = "cv.file.moved"      // 文件在文件夹树中移动（含批量移动逐条展开）
	TopicFileDownloaded = "cv.file.downloaded" // 已签发下载 URL

	// 文件夹领域.
	TopicFolderMoved   = "cv.folder.moved"   // 子树重新挂载，后代路径已级联更新
	TopicFolderDeleted = "cv.folder.deleted" // 子树递归删除完成，文件已转为未归档

	// 审计领域.
	TopicActivityRecorded = "cv.activity.recorded" // 一条操作审计已落库

	// 账户领域.
	TopicUserRegistered = "cv.user.registered" // 新账户注册完成
)

// 主题分组，用于批量订阅或权限控制.
var (
	// 文件相关主题集合.
	FileTopics = []string{
		TopicFileUploaded, TopicFileDeleted,
		TopicFileMoved, TopicFileDownloaded,
	}

	// 文件夹相关主题集合.
	FolderTopics = []string{
		TopicFolderMoved, TopicFolderDeleted,
	}

	// 审计相关主题集合.
	ActivityTopics = []string{
		TopicActivityRecorded,
	}
)
