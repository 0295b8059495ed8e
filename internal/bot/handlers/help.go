package handlers

import "context"

const helpText = "# Bot Commands\n" +
	"All commands must start with a '!' character.\n" +
	"모든 명령어는 '!' 문자로 시작해야 합니다.\n" +
	"\n" +
	"Response will be sent to Direct Message.\n" +
	"응답은 DM으로 전송됩니다.\n" +
	"\n" +
	"## Available commands:\n" +
	"\n" +
	"### Help\n" +
	"- `!도움`, `!h`, `!help`\n" +
	"- 도움말 보기 Show this help message\n" +
	"- **Example:** `!도움` or `!h`\n" +
	"\n" +
	"### Attendance Commands\n" +
	"\n" +
	"#### Check-in\n" +
	"- `!출근`, `!in`\n" +
	"- 출근 Attend work\n" +
	"- **Example:** `!출근` or `!in`\n" +
	"\n" +
	"#### Check-out\n" +
	"- `!퇴근`, `!out`\n" +
	"- 퇴근 Leave work\n" +
	"- **Example:** `!퇴근` or `!out`\n" +
	"\n" +
	"#### Missing Attendance\n" +
	"- `!출퇴근누락 <일자> <출근시간> <퇴근시간>`, `!missing <date> <time_in> <time_out>`\n" +
	"- 누락된 출퇴근 기록 입력 Enter missing attendance\n" +
	"- **Example:** `!출퇴근누락 2024-12-31 09:00:00 18:00:00` or `!missing 2024-12-31 09:00:00 18:00:00`\n" +
	"\n" +
	"#### Missing Check-out\n" +
	"- `!퇴근누락 <일자> <퇴근시간>`, `!missingout <date> <time_out>`\n" +
	"- 누락된 퇴근 시간 입력 Enter missing leave time\n" +
	"- **Example:** `!퇴근누락 2024-12-31 18:00` or `!missingout 2024-12-31 18:00`\n" +
	"\n" +
	"#### Recent Records\n" +
	"- `!최근기록`, `!recentrecord`\n" +
	"- 최근 7개 출퇴근 기록 조회 Show your recent 7 attendance records\n" +
	"- **Example:** `!최근기록` or `!recentrecord`\n" +
	"\n" +
	"#### Edit Record\n" +
	"- `!수정 <인덱스> <날짜> <출근시간> <퇴근시간:선택> <위치:선택>`, `!edit <index> <date> <time_in> <time_out:optional> <location:optional>`\n" +
	"- 최근 기록 수정 Edit a recent record by index\n" +
	"- **Example:** `!수정 0 2024-12-31 09:00 18:00 집` or `!edit 0 2024-12-31 09:00 18:00 Home`\n" +
	"\n" +
	"#### Delete Record\n" +
	"- `!삭제 <인덱스>`, `!delete <index>`\n" +
	"- 최근 기록 삭제 Delete a recent record by index\n" +
	"- **Example:** `!삭제 0` or `!delete 0`\n" +
	"\n" +
	"#### Vacation\n" +
	"- `!휴가 <휴가시작일> <휴가마감일> <사유>`, `!vacation <start_date> <end_date> <reason>`\n" +
	"- 휴가 기록 Record vacation\n" +
	"- **Example:** `!휴가 2024-12-31 2025-01-02 가족여행` or `!vacation 2024-12-31 2025-01-02 Family_trip`\n" +
	"\n" +
	"#### Team Status\n" +
	"- `!상태 <일자:선택>`, `!teamstatus <date:optional>`\n" +
	"- 출퇴근 상태 출력 Print all team members' statuses\n" +
	"- 일자를 지정하지 않으면 오늘의 상태 출력 Print all team members' statuses for the current date\n" +
	"- **Example:** `!상태` or `!상태 2024-12-31` or `!teamstatus` or `!teamstatus 2024-12-31`\n" +
	"\n" +
	"#### Monthly Report\n" +
	"- `!월간보고 <연도-월:선택>`, `!monthlyreport <year-month:optional>`\n" +
	"- 이번 달 출퇴근 보고서 출력 (자신의 보고서만) Print the monthly attendance report (your report only)\n" +
	"- 연도와 월을 지정하지 않으면 현재 달의 보고서 출력 Defaults to the current month\n" +
	"- **Example:** `!월간보고` or `!월간보고 2024-12` or `!monthlyreport` or `!monthlyreport 2024-12`\n" +
	"\n" +
	"### Member Management Commands\n" +
	"\n" +
	"#### Add Member\n" +
	"- `!멤버추가 <@아이디> <이름> <과정> <전화번호> <이메일> <생일>`, `!addmember <@user_id> <name> <position> <phone> <email> <birthday>`\n" +
	"- 멤버 추가 Add a member\n" +
	"- **Example:** `!멤버추가 @gdhong 홍길동 PhD 010-1234-5678 gdhong@kw.ac.kr 1970-01-01` or `!addmember @gdhong Gildong-Hong PhD 010-1234-5678 gdhong@kw.ac.kr 1970-01-01`\n" +
	"\n" +
	"#### Update Member\n" +
	"- `!멤버업데이트 <@아이디> <과정:선택> <전화번호:선택> <이메일:선택> <생일:선택>`, `!updatemember <@user_id> <position:optional> <phone:optional> <email:optional> <birthday:optional>`\n" +
	"- 멤버 정보 업데이트 Update member info (optional)\n" +
	"- **Example:** `!멤버업데이트 @gdhong PhD 010-1234-5678 gdhong@kw.ac.kr 1970-01-01` or `!updatemember @gdhong PhD 010-1234-5678`\n" +
	"\n" +
	"#### Delete Member\n" +
	"- `!멤버삭제 <@아이디>`, `!deletemember <@user_id>`\n" +
	"- 멤버 삭제 Delete a member\n" +
	"- **Example:** `!멤버삭제 @gdhong` or `!deletemember @gdhong`\n" +
	"\n" +
	"#### Member Info\n" +
	"- `!멤버조회 <@아이디>`, `!memberinfo <@user_id>`\n" +
	"- 멤버 정보 조회 Get member info\n" +
	"- **Example:** `!멤버조회 @gdhong` or `!memberinfo @gdhong`\n"

func newHelpHandler(_ HandlerDeps) HandlerFunc {
	return func(_ context.Context, _ string, _ []string) (string, error) {
		return helpText, nil
	}
}
