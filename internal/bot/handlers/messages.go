package handlers

import "fmt"

// Bilingual Markdown messages delivered as direct messages. Korean first,
// English after, matching the channel's house style.

const msgUnknownCommand = "## 알 수 없는 명령어 (Unknown command)\n" +
	"도움말을 보려면 `!h`를 사용하세요.\n" +
	"\n" +
	"Use `!h` for help.\n"

const msgInvalidDateFormat = "## 오류: 잘못된 날짜 형식 (Error: Invalid date format)\n" +
	"YYYY-MM-DD 형식을 사용하세요.\n" +
	"\n" +
	"Use YYYY-MM-DD format.\n"

const msgInvalidTimeFormat = "## 오류: 잘못된 시간 형식 (Error: Invalid time format)\n" +
	"HH:MM 또는 HH:MM:SS 형식을 사용하세요.\n" +
	"\n" +
	"Use HH:MM or HH:MM:SS format.\n"

const msgInvalidMonthFormat = "## 오류: 잘못된 날짜 형식 (Error: Invalid date format)\n" +
	"YYYY-MM 형식을 사용하세요.\n" +
	"예시: `!monthlyreport 2024-08`\n" +
	"\n" +
	"Use YYYY-MM format.\n" +
	"Example: `!monthlyreport 2024-08`\n"

const msgFutureDate = "## 오류: 미래 날짜 (Error: Future date)\n" +
	"미래 날짜는 기록할 수 없습니다.\n" +
	"\n" +
	"Cannot record future dates.\n"

const msgInvertedTimes = "## 오류: 잘못된 시간 범위 (Error: Invalid time range)\n" +
	"퇴근 시간은 출근 시간보다 늦어야 합니다.\n" +
	"\n" +
	"Check-out time must be later than check-in time.\n"

const msgNonWorkingDay = "#### :calendar: Team Status\n**The date is not a working day.**"

const msgNoTeamRecords = "#### :warning: Team Status\n**No team members with attendance records found.**"

func msgInternalError(err error) string {
	return fmt.Sprintf("## 예기치 않은 오류 발생 (An unexpected error occurred)\n"+
		"오류 내용: %v\n"+
		"\n"+
		"Error details: %v\n", err, err)
}

func msgAlreadyCheckedIn(date string) string {
	return fmt.Sprintf("## 오류: 이미 출근 상태 (Error: Already checked in)\n"+
		"%s에 이미 출근 처리되어 있습니다. 먼저 퇴근하세요.\n"+
		"\n"+
		"You are already checked in for %s. Please check out first.\n", date, date)
}

func msgNoActiveCheckIn(date string) string {
	return fmt.Sprintf("## 오류: 출근 기록 없음 (Error: No active check-in)\n"+
		"%s에 출근 기록이 없습니다. 먼저 출근하세요.\n"+
		"\n"+
		"No active check-in found for %s. Please check in first.\n", date, date)
}

func msgAttendanceRecorded(action, date, timeStr, location string) string {
	return fmt.Sprintf("## 출퇴근 기록 (Attendance Record)\n"+
		"- **행동 (Action):** %s\n"+
		"- **날짜 (Date):** %s\n"+
		"- **시간 (Time):** %s\n"+
		"- **위치 (Location):** %s\n", action, date, timeStr, location)
}

func msgMissingRecorded(date string) string {
	return fmt.Sprintf("## 누락된 출퇴근 기록 (Missing Attendance Recorded)\n"+
		"- **날짜 (Date):** %s\n"+
		"- **상태 (Status):** 성공적으로 기록됨 (Successfully recorded)\n", date)
}

func msgVacationRecorded(start, end string) string {
	return fmt.Sprintf("## 휴가 기록 (Vacation Record)\n"+
		"- **시작일 (Start Date):** %s\n"+
		"- **종료일 (End Date):** %s\n"+
		"- **상태 (Status):** 성공적으로 기록됨 (Successfully recorded)\n", start, end)
}

func msgInvalidIndex(count int) string {
	return fmt.Sprintf("## 오류: 잘못된 인덱스 (Error: Invalid index)\n"+
		"인덱스는 0부터 %d 사이여야 합니다. `!최근기록`으로 확인하세요.\n"+
		"\n"+
		"Index must be between 0 and %d. Use `!recentrecord` to check.\n", count-1, count-1)
}

const msgNoRecentRecords = "## 최근 기록 없음 (No recent records)\n" +
	"최근 출퇴근 기록이 없습니다.\n" +
	"\n" +
	"You have no recent attendance records.\n"

func msgMemberExists(userID string) string {
	return fmt.Sprintf("## 오류: 멤버가 이미 존재함 (Error: Member already exists)\n"+
		"멤버 %s가 이미 존재합니다.\n"+
		"정보를 업데이트하려면 `!updatemember`를, 삭제하려면 `!deletemember`를 사용하세요.\n"+
		"\n"+
		"Member %s already exists.\n"+
		"Use `!updatemember` to update the information or `!deletemember` to delete the member.\n",
		userID, userID)
}

func msgMemberMissing(userID string) string {
	return fmt.Sprintf("## 오류: 멤버가 존재하지 않음 (Error: Member does not exist)\n"+
		"멤버 %s가 존재하지 않습니다.\n"+
		"멤버를 추가하려면 `!addmember`를 사용하세요.\n"+
		"\n"+
		"Member %s does not exist.\n"+
		"Use `!addmember` to add the member.\n", userID, userID)
}

func msgMemberNotFound(userID string) string {
	return fmt.Sprintf("## 오류: 멤버를 찾을 수 없음 (Error: Member not found)\n"+
		"멤버 %s를 찾을 수 없습니다.\n"+
		"\n"+
		"Member %s does not exist.\n", userID, userID)
}

// AutoCheckoutMessage is the direct message sent to users whose open
// record was closed by the midnight auto-checkout.
func AutoCheckoutMessage(date, timeOut string) string {
	return fmt.Sprintf("## 자동 퇴근 처리 (Automatic Check-out)\n"+
		"- **날짜 (Date):** %s\n"+
		"- **시간 (Time):** %s\n"+
		"퇴근 기록이 없어 자동으로 퇴근 처리되었습니다.\n"+
		"\n"+
		"You were automatically checked out because no check-out was recorded.\n", date, timeOut)
}

func msgRecordUpdated(date string) string {
	return fmt.Sprintf("## 기록 수정됨 (Record Updated)\n"+
		"- **날짜 (Date):** %s\n"+
		"- **상태 (Status):** 성공적으로 수정됨 (Successfully updated)\n", date)
}

func msgRecordDeleted(date string) string {
	return fmt.Sprintf("## 기록 삭제됨 (Record Deleted)\n"+
		"- **날짜 (Date):** %s\n"+
		"- **상태 (Status):** 성공적으로 삭제됨 (Successfully deleted)\n", date)
}

func msgDatabaseFixed(removed int64) string {
	return fmt.Sprintf("## 데이터베이스 정리 완료 (Database Repaired)\n"+
		"중복된 미퇴근 기록 %d건을 정리했습니다.\n"+
		"\n"+
		"Removed %d duplicate open attendance rows.\n", removed, removed)
}

// Per-command usage texts, returned when a command arrives with fewer
// tokens than it needs.

const usageMissing = "## 잘못된 형식 (Invalid Format)\n" +
	"올바른 사용법: `!missing YYYY-MM-DD <출근시간> <퇴근시간>`\n" +
	"예시: `!missing 2024-08-01 09:00 18:00`\n" +
	"\n" +
	"Use: `!missing YYYY-MM-DD <time_in> <time_out>`\n" +
	"Example: `!missing 2024-08-01 09:00 18:00`\n"

const usageMissingOut = "## 잘못된 형식 (Invalid Format)\n" +
	"올바른 사용법: `!missingout YYYY-MM-DD <퇴근시간>`\n" +
	"예시: `!missingout 2024-08-01 18:00`\n" +
	"\n" +
	"Use: `!missingout YYYY-MM-DD <time_out>`\n" +
	"Example: `!missingout 2024-08-01 18:00`\n"

const usageEdit = "## 잘못된 형식 (Invalid Format)\n" +
	"올바른 사용법: `!edit <인덱스> <날짜> <출근시간> <퇴근시간:선택> <위치:선택>`\n" +
	"인덱스는 최근 7일 출퇴근 기록에서 선택한 인덱스입니다. `!최근기록`을 사용해 확인하세요.\n" +
	"예시: `!edit 0 2024-08-01 09:00 18:00 집`\n" +
	"\n" +
	"Use: `!edit <index> <date> <time_in> <time_out:optional> <location:optional>`\n" +
	"Index is selected from recent 7 days' attendance records. Use `!recentrecord` to check.\n" +
	"Example: `!edit 0 2024-08-01 09:00 18:00 Home`\n"

const usageDelete = "## 잘못된 형식 (Invalid Format)\n" +
	"올바른 사용법: `!delete <인덱스>`\n" +
	"인덱스는 최근 7일 출퇴근 기록에서 선택한 인덱스입니다. `!최근기록`을 사용해 확인하세요.\n" +
	"예시: `!delete 0`\n" +
	"\n" +
	"Use: `!delete <index>`\n" +
	"Index is selected from recent 7 days' attendance records. Use `!recentrecord` to check.\n" +
	"Example: `!delete 0`\n"

const usageVacation = "## 잘못된 형식 (Invalid Format)\n" +
	"올바른 사용법: `!vacation YYYY-MM-DD(시작일) YYYY-MM-DD(종료일) <사유>`\n" +
	"예시: `!vacation 2024-08-01 2024-08-05 가족여행`\n" +
	"\n" +
	"Use: `!vacation YYYY-MM-DD(start) YYYY-MM-DD(end) <reason>`\n" +
	"Example: `!vacation 2024-08-01 2024-08-05 Family_vacation`\n"

const usageAddMember = "## 잘못된 형식 (Invalid Format)\n" +
	"올바른 사용법: `!addmember <사용자ID> <이름> <직위> <전화번호> <이메일> <생년월일>`\n" +
	"예시: `!addmember @gdhong 홍길동 석사 010-1234-5678 gdhong@kw.ac.kr 1970-01-01`\n" +
	"\n" +
	"Use: `!addmember <user_id> <name> <position> <phone> <email> <birthday>`\n" +
	"Example: `!addmember @gdhong Gildong_Hong MS 010-1234-5678 gdhong@kw.ac.kr 1970-01-01`\n"

const usageUpdateMember = "## 잘못된 형식 (Invalid Format)\n" +
	"올바른 사용법: `!updatemember <사용자ID> <직위:선택> <전화번호:선택> <이메일:선택> <생일:선택>`\n" +
	"예시: `!updatemember @gdhong PhD 010-1234-5678 gdhong@kw.ac.kr 1970-01-01`\n" +
	"\n" +
	"Use: `!updatemember <user_id> <position:optional> <phone:optional> <email:optional> <birthday:optional>`\n" +
	"Example: `!updatemember @gdhong PhD 010-1234-5678`\n"

const usageDeleteMember = "## 잘못된 형식 (Invalid Format)\n" +
	"올바른 사용법: `!deletemember <사용자ID>`\n" +
	"예시: `!deletemember @gdhong`\n" +
	"\n" +
	"Use: `!deletemember <user_id>`\n" +
	"Example: `!deletemember @gdhong`\n"

const usageMemberInfo = "## 잘못된 형식 (Invalid Format)\n" +
	"올바른 사용법: `!memberinfo <사용자ID>`\n" +
	"예시: `!memberinfo @gdhong`\n" +
	"\n" +
	"Use: `!memberinfo <user_id>`\n" +
	"Example: `!memberinfo @gdhong`\n"
