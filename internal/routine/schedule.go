package routine

import "strings"

// subMarker prefixes blocks that belong to the line above them.
const subMarker = "└"

// Block is one line of a generated day schedule.
type Block struct {
	Time     string
	Name     string
	Category Category
	Minutes  int
	Note     string
}

// CleanName is the block name as recorded in the log: trimmed, with any
// sub-block marker removed.
func (b Block) CleanName() string {
	name := strings.TrimSpace(b.Name)
	if strings.HasPrefix(name, subMarker) {
		name = strings.TrimSpace(strings.TrimPrefix(name, subMarker))
	}
	return name
}

// Sub reports whether the block is displayed nested under the previous one.
func (b Block) Sub() bool {
	return strings.HasPrefix(strings.TrimSpace(b.Name), subMarker)
}

func (b Block) Checkable() bool { return b.Category.Checkable() }

// Generate returns the ordered schedule for a phase, day type and mode.
func Generate(phase int, dayType DayType, mode Mode) []Block {
	if mode == ModeOff {
		return []Block{{"전일", "OFF 모드 (완전 휴식)", CategoryRest, 0, "푹 쉬고 내일 복귀하세요"}}
	}
	if dayType == Weekday {
		return weekdaySchedule(phase)
	}
	return weekendSchedule(phase)
}

func weekdaySchedule(phase int) []Block {
	s := []Block{
		{"05:30", "기상 + 준비", CategoryMorning, 0, "물 한잔, 세수, 스트레칭"},
		{"06:00-07:20", "출근 이동", CategoryMorning, 0, ""},
	}
	if phase >= 1 {
		s = append(s, Block{"07:40-08:40", "☕ 아침 카페 출석", CategoryStudy, 0, "카페 도착 = 오늘 50% 성공"})
	}
	if phase >= 2 {
		s = append(s,
			Block{"07:40-08:10", "   └ 전날 인강 다시 보기", CategoryStudy, 30, "표시해둔 구간만 복습"},
			Block{"08:10-08:40", "   └ 복습용 문풀", CategoryStudy, 30, "전날 강의 내용 5~7문제"},
		)
	}
	s = append(s,
		Block{"09:00-18:00", "💼 회사", CategoryWork, 0, ""},
		Block{"18:00-20:00", "퇴근 + 저녁", CategoryRest, 0, ""},
		Block{"20:00-20:45", "저녁 휴식", CategoryRest, 0, "유튜브/게임 가능 (공부 시작 전까지만)"},
	)
	if phase >= 1 {
		s = append(s, Block{"20:45", "🪑 저녁 출석 (앉기)", CategoryStudy, 0, "의자에 앉는 순간 70% 성공"})
	}
	switch phase {
	case 1:
		s = append(s,
			Block{"20:45-21:30", "   └ 인강 틀어놓기/책 펴놓기", CategoryStudy, 45, "이해 0%여도 상관없음, 모양만"},
			Block{"21:30-22:00", "🏋️ 운동 30분", CategoryExercise, 0, "로잉/유산소"},
			Block{"22:00-22:20", "🚿 샤워", CategoryExercise, 0, "모드 전환 의식"},
			Block{"22:20-23:00", "책상 앞 유지", CategoryStudy, 0, "민법책 펼쳐보기, 자서전 읽기, 멍"},
		)
	case 2:
		s = append(s,
			Block{"20:45-21:30", "📚 인강 1강", CategoryStudy, 45, "제대로 들어보려고 노력"},
			Block{"21:30-22:00", "🏋️ 운동 30분", CategoryExercise, 0, ""},
			Block{"22:00-22:20", "🚿 샤워", CategoryExercise, 0, ""},
			Block{"22:20-23:00", "📚 인강 이어서 or 복습", CategoryStudy, 40, "2번째 강의 시작해보기"},
		)
	case 3:
		s = append(s,
			Block{"20:45-21:30", "📚 인강 1강", CategoryStudy, 45, ""},
			Block{"21:30-21:50", "✏️ 1차 문풀", CategoryStudy, 20, "방금 들은 1강 관련 4-6문제"},
			Block{"21:50-22:20", "🏋️ 운동 30분", CategoryExercise, 0, ""},
			Block{"22:20-22:35", "🚿 샤워", CategoryExercise, 0, ""},
			Block{"22:35-23:20", "📚 인강 2강", CategoryStudy, 45, ""},
			Block{"23:20-23:40", "📖 복습 + 정리", CategoryStudy, 20, "오늘 내용 핵심 메모"},
		)
	case 4:
		s = append(s,
			Block{"20:45-21:30", "📚 인강 1강", CategoryStudy, 45, "오늘 3강 중 1강"},
			Block{"21:30-21:50", "✏️ 1차 문풀", CategoryStudy, 20, "1강 관련 4-6문제"},
			Block{"21:50-22:20", "🏋️ 운동 30분", CategoryExercise, 0, "월/수/금 or 화/목"},
			Block{"22:20-22:35", "🚿 샤워 15분", CategoryExercise, 0, "공부 모드 스위치 ON"},
			Block{"22:35-23:20", "📚 인강 2강", CategoryStudy, 45, ""},
			Block{"23:20-23:35", "✏️ 2차 문풀", CategoryStudy, 15, "2강 관련 3-5문제"},
			Block{"23:35-00:20", "📚 인강 3강", CategoryStudy, 45, "피곤하면 틀어놓기 모드 허용"},
			Block{"00:20-00:40", "✏️ 마감 문풀 + 정리", CategoryStudy, 20, "핵심 3-5줄 메모, 내일 복습 포인트 표시"},
		)
	}
	return append(s,
		Block{"00:40-01:00", "자유시간 + 취침 준비", CategoryRest, 0, ""},
		Block{"01:00", "💤 취침", CategoryRest, 0, "05:30 기상 리듬 유지"},
	)
}

// weekendSchedule is shared by Saturday and Sunday.
func weekendSchedule(phase int) []Block {
	s := []Block{
		{"09:00-09:30", "기상 + 씻기 + 정리", CategoryMorning, 0, ""},
	}
	if phase >= 1 {
		s = append(s, Block{"09:30-10:30", "☕ 아침 복습 블록", CategoryStudy, 60, "전날/한 주 누적 복습"})
	}
	switch phase {
	case 1:
		s = append(s,
			Block{"10:30-12:00", "📚 인강 틀기", CategoryStudy, 60, "1강만 끝나도 대성공, 모양 유지"},
			Block{"12:00-13:00", "점심 + 휴식", CategoryRest, 0, ""},
			Block{"13:00-15:00", "📚 인강 or 유지", CategoryStudy, 60, "한 블록만 앉아있어도 성공"},
		)
	case 2:
		s = append(s,
			Block{"10:30-12:00", "📚 인강 1~2강", CategoryStudy, 90, ""},
			Block{"12:00-13:00", "점심 + 휴식", CategoryRest, 0, ""},
			Block{"13:00-15:00", "📚 인강 이어서", CategoryStudy, 90, "하루 3-4강 목표"},
			Block{"15:30-17:30", "📖 가벼운 문풀/복습", CategoryStudy, 60, ""},
		)
	case 3:
		s = append(s,
			Block{"10:30-12:00", "📚 오전 인강 2강", CategoryStudy, 90, ""},
			Block{"12:00-13:00", "점심", CategoryRest, 0, ""},
			Block{"13:00-15:00", "📚 오후 전반 인강 2강", CategoryStudy, 90, ""},
			Block{"15:00-16:00", "✏️ 문풀 1차", CategoryStudy, 60, "오전 4강 관련 15-20문제"},
			Block{"16:00-17:30", "📚 오후 후반 인강", CategoryStudy, 90, ""},
		)
	case 4:
		s = append(s,
			Block{"09:30-10:30", "☕ 아침 복습", CategoryStudy, 60, "복습용 문풀 10-15문제"},
			Block{"10:30-12:00", "📚 오전 인강 2강", CategoryStudy, 90, ""},
			Block{"12:00-13:00", "점심 + 휴식", CategoryRest, 0, "산책 10분"},
			Block{"13:00-14:30", "📚 오후 인강 2강", CategoryStudy, 90, "이 시점 4/6강 완료"},
			Block{"14:30-15:30", "✏️ 문풀 1차", CategoryStudy, 60, "오전 4강 관련 15-25문제"},
			Block{"15:30-17:00", "📚 오후 후반 인강 2강", CategoryStudy, 90, "6강 마무리"},
			Block{"17:00-18:00", "저녁 + 휴식", CategoryRest, 0, ""},
			Block{"18:00-19:30", "✏️ 문풀 2차", CategoryStudy, 90, "하루 전체 + 주간 누적 20-30문제"},
			Block{"19:30-20:00", "📝 정리 + 내일 준비", CategoryStudy, 30, "핵심 메모, 내일 복습 포인트"},
		)
	}
	return append(s, Block{"20:00 이후", "자유시간 + 산책", CategoryRest, 0, ""})
}

// CheckableBlock is a schedule block that takes a completion checkmark.
type CheckableBlock struct {
	Name     string
	Minutes  int
	Note     string
	Category Category
}

// CheckableBlocks filters the generated schedule down to study and exercise
// blocks, keyed by their clean names.
func CheckableBlocks(phase int, dayType DayType, mode Mode) []CheckableBlock {
	var out []CheckableBlock
	for _, b := range Generate(phase, dayType, mode) {
		if !b.Checkable() {
			continue
		}
		out = append(out, CheckableBlock{
			Name:     b.CleanName(),
			Minutes:  b.Minutes,
			Note:     b.Note,
			Category: b.Category,
		})
	}
	return out
}

// PossibleMinutes is the total estimate if every checkable block is done.
func PossibleMinutes(blocks []CheckableBlock) int {
	total := 0
	for _, b := range blocks {
		total += b.Minutes
	}
	return total
}
